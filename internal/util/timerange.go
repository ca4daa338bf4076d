package util

import (
	"time"

	"github.com/nareshwadi/market/market-backend/internal/domain"
)

// TimeRange selects the dashboard aggregation window.
type TimeRange string

const (
	Range24Hours TimeRange = "24h"
	Range7Days   TimeRange = "7days"
	Range30Days  TimeRange = "30days"
	Range90Days  TimeRange = "90days"
	RangeAll     TimeRange = "all"
)

// CutoffFor returns the inclusive lower bound for a time range. RangeAll maps
// to the zero time so every row qualifies. An empty range defaults to RangeAll.
func CutoffFor(r TimeRange) (time.Time, error) {
	now := time.Now()
	switch r {
	case Range24Hours:
		return now.Add(-24 * time.Hour), nil
	case Range7Days:
		return now.AddDate(0, 0, -7), nil
	case Range30Days:
		return now.AddDate(0, 0, -30), nil
	case Range90Days:
		return now.AddDate(0, 0, -90), nil
	case RangeAll, "":
		return time.Time{}, nil
	}
	return time.Time{}, domain.ErrInvalidInput
}
