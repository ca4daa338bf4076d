package util

import (
	"testing"
	"time"

	"github.com/nareshwadi/market/market-backend/internal/domain"
)

func TestCutoffFor_All(t *testing.T) {
	cutoff, err := CutoffFor(RangeAll)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cutoff.IsZero() {
		t.Errorf("expected zero time for 'all', got %v", cutoff)
	}
}

func TestCutoffFor_EmptyDefaultsToAll(t *testing.T) {
	cutoff, err := CutoffFor("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cutoff.IsZero() {
		t.Errorf("expected zero time for empty range, got %v", cutoff)
	}
}

func TestCutoffFor_Windows(t *testing.T) {
	tests := []struct {
		r    TimeRange
		want time.Duration
	}{
		{Range24Hours, 24 * time.Hour},
		{Range7Days, 7 * 24 * time.Hour},
		{Range30Days, 30 * 24 * time.Hour},
		{Range90Days, 90 * 24 * time.Hour},
	}
	for _, tt := range tests {
		cutoff, err := CutoffFor(tt.r)
		if err != nil {
			t.Fatalf("range %s: expected no error, got %v", tt.r, err)
		}
		got := time.Since(cutoff)
		if got < tt.want-time.Minute || got > tt.want+time.Minute {
			t.Errorf("range %s: cutoff %v too far from expected window %v", tt.r, got, tt.want)
		}
	}
}

func TestCutoffFor_Invalid(t *testing.T) {
	if _, err := CutoffFor("yesterday"); err != domain.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
