// Package report provides the error-reporting collaborator used by the item
// services and state containers. Reporting is fire-and-forget: a Reporter never
// panics and never propagates anything back to the caller.
package report

import "github.com/rs/zerolog"

// Reporter receives every failure the item services and stores swallow.
type Reporter interface {
	Report(err error, context string)
}

// ZerologReporter logs reported errors through an injected zerolog logger.
type ZerologReporter struct {
	logger zerolog.Logger
}

// NewZerologReporter creates a ZerologReporter.
func NewZerologReporter(logger zerolog.Logger) *ZerologReporter {
	return &ZerologReporter{logger: logger}
}

// Report implements Reporter.
func (r *ZerologReporter) Report(err error, context string) {
	if err == nil {
		return
	}
	r.logger.Error().Err(err).Str("context", context).Msg("operation failed")
}

// NoOpReporter discards all reports. Useful in tests.
type NoOpReporter struct{}

// Report does nothing.
func (NoOpReporter) Report(err error, context string) {}
