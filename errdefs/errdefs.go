// Package errdefs defines the error kinds returned across the streamml API.
//
// Every error returned by a streamml package wraps exactly one of the
// sentinels below, so callers can classify a failure with errors.Is (or the
// Is* helpers) independently of the context added along the way.
package errdefs

import "github.com/pkg/errors"

var (
	// ErrInvalidParameter indicates malformed, missing or mismatched caller
	// input. The caller can recover by correcting the input.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotSupported indicates a framework or feature that is recognized but
	// unavailable in this build or runtime environment.
	ErrNotSupported = errors.New("not supported")

	// ErrEngineInit indicates the underlying pipeline engine failed to start.
	ErrEngineInit = errors.New("pipeline engine failed to initialize")
)

// IsInvalidParameter reports whether err wraps ErrInvalidParameter.
func IsInvalidParameter(err error) bool { return errors.Is(err, ErrInvalidParameter) }

// IsNotSupported reports whether err wraps ErrNotSupported.
func IsNotSupported(err error) bool { return errors.Is(err, ErrNotSupported) }

// IsEngineInit reports whether err wraps ErrEngineInit.
func IsEngineInit(err error) bool { return errors.Is(err, ErrEngineInit) }
