package services

import "fmt"

// Upstream step names carried on failures so callers can report which call
// in a multi-step flow broke.
const (
	StepSynthesis   = "synthesis"
	StepContact     = "contact"
	StepAppointment = "appointment"
)

// UpstreamError is a failed call to a third-party provider: a transport
// error, a non-success status, or an unusable response body.
type UpstreamError struct {
	Step       string
	StatusCode int // 0 when no HTTP response was received
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s step failed: upstream returned status %d: %s", e.Step, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s step failed: %s", e.Step, e.Detail)
}
