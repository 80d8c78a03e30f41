package domain

import (
	"context"
	"errors"
)

// FailureReason classifies why a fetch job or asset request failed.
type FailureReason string

const (
	// ReasonNone means no failure.
	ReasonNone FailureReason = ""
	// ReasonFetch means the fetch capability returned an error.
	ReasonFetch FailureReason = "fetch"
	// ReasonDecode means bytes were delivered but did not decode.
	ReasonDecode FailureReason = "decode"
	// ReasonMissingFile means a local bundle file was absent.
	ReasonMissingFile FailureReason = "missing-file"
	// ReasonIntegrity means bytes did not match their content hash.
	ReasonIntegrity FailureReason = "integrity"
	// ReasonDependency means a bundle the request depends on failed.
	ReasonDependency FailureReason = "dependency"
	// ReasonCancelled means the operation was cancelled.
	ReasonCancelled FailureReason = "cancelled"
	// ReasonOther covers every other failure.
	ReasonOther FailureReason = "other"
)

// ReasonOf classifies an error.
func ReasonOf(err error) FailureReason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrDependencyFailed):
		return ReasonDependency
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, ErrSchedulerStopped):
		return ReasonCancelled
	case errors.Is(err, ErrIntegrityMismatch):
		return ReasonIntegrity
	case errors.Is(err, ErrMissingFile):
		return ReasonMissingFile
	case errors.Is(err, ErrDecodeFailed):
		return ReasonDecode
	case errors.Is(err, ErrFetchFailed):
		return ReasonFetch
	default:
		return ReasonOther
	}
}
