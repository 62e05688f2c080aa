package videogen

import (
	"errors"
	"fmt"
	"time"
)

// Request model errors.
var (
	// ErrFieldLocked is returned when a setting is edited while the
	// active mode pins it.
	ErrFieldLocked = errors.New("field is locked by the active mode")

	// ErrFieldNotApplicable is returned when a media field is set in a
	// mode that does not use it.
	ErrFieldNotApplicable = errors.New("field does not apply to the active mode")

	// ErrTooManyReferences is returned when adding a reference image
	// beyond MaxReferenceImages.
	ErrTooManyReferences = errors.New("reference image limit reached")

	// ErrLoopActive is returned when an end frame is set while the
	// looping flag is on. Clear the loop flag first.
	ErrLoopActive = errors.New("cannot set an end frame while looping is enabled")
)

// ValidationError reports that a request is incomplete for its mode.
// It is returned synchronously, before any network interaction.
type ValidationError struct {
	Mode   Mode
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request not ready (%s): %s", e.Mode, e.Reason)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ReadError reports a media ingestion failure: the source could not be
// read, or could not be decoded to a usable payload.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("media read failed: %v", e.Err)
	}
	return fmt.Sprintf("media read failed for %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsReadError checks if an error is a ReadError.
func IsReadError(err error) bool {
	var rErr *ReadError
	return errors.As(err, &rErr)
}

// RateLimitError is returned when a client-side rate limit is hit before
// submission, or when the remote endpoint reports resource exhaustion.
type RateLimitError struct {
	RetryAfter time.Duration
	LimitType  string
	Model      string
	Err        error // Underlying error from the provider
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: %s limit, retry after %v",
		e.Model, e.LimitType, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// IsRateLimitError checks if an error is a RateLimitError.
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}
