package errorsx

import (
	"errors"
	"fmt"

	"github.com/integralist/fastly-mutate/internal/mutator/enums"
)

// StageError carries the diagnostics shared by every pipeline failure.
type StageError struct {
	// Stage is the pipeline stage that failed.
	Stage enums.Stage
	// Service is the service name or ID the run targeted.
	Service string
	// Version is the service version the stage operated on (0 if none).
	Version int32
	// Message is a human readable summary of what was attempted.
	Message string
	// StatusCode is the HTTP status returned by the Fastly API (0 if no response).
	StatusCode int
	// Body is the raw Fastly API response body, if any.
	Body string
	// Cause is the underlying transport, SDK or I/O error.
	Cause error
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("%s stage failed: %s", e.Stage, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}

	switch {
	case e.Body != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	case e.Cause != nil:
		msg = fmt.Sprintf("%s: %s", msg, e.Cause)
	}

	return msg
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Detail exposes the shared diagnostics of any error in this package.
func (e *StageError) Detail() *StageError {
	return e
}

// AsStageError returns the diagnostics of the first stage error found in err's chain.
func AsStageError(err error) (*StageError, bool) {
	var detailed interface{ Detail() *StageError }
	if !errors.As(err, &detailed) {
		return nil, false
	}

	return detailed.Detail(), true
}

// ForStage wraps the diagnostics into the error type matching their stage.
//
// NOTE: A missing service is a lookup failure with its own type.
// Use NewServiceNotFound for that case.
func ForStage(detail *StageError) error {
	switch detail.Stage {
	case enums.Lookup:
		return &ServiceLookupError{detail}
	case enums.Clone:
		return &CloneError{detail}
	case enums.VCL:
		return &VCLUploadError{detail}
	case enums.Backend:
		return &BackendUpdateError{detail}
	case enums.Domain:
		return &DomainUpdateError{detail}
	case enums.Activate:
		return &ActivationError{detail}
	case enums.Undefined:
	}

	return detail
}
