package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinels for the fatal web4 conditions. Typed errors below match them through errors.Is.
var (
	ErrMissingPreload = stderrors.New("missing preload")
	ErrDecode         = stderrors.New("decode failure")
	ErrNormalization  = stderrors.New("normalization fault")
)

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// MissingPreloadError reports a declared preload URL that was not attached, or was attached
// without a body.
type MissingPreloadError struct {
	URL    string
	Reason string
}

func (e *MissingPreloadError) Error() string {
	return fmt.Sprintf("preload %s: %s", e.URL, e.Reason)
}

func (e *MissingPreloadError) Is(target error) bool { return target == ErrMissingPreload }

// DecodeError wraps a failure to parse preload bytes into the expected feed shape.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// NormalizationError is raised when a quote cannot be rescaled to the configured display
// decimals: the feed carries fewer decimals than the registry, or the exponent exceeds what a
// 128-bit power of ten can hold.
type NormalizationError struct {
	AssetID         string
	FeedDecimals    uint8
	DisplayDecimals uint8
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize %s: feed decimals %d, display decimals %d",
		e.AssetID, e.FeedDecimals, e.DisplayDecimals)
}

func (e *NormalizationError) Is(target error) bool { return target == ErrNormalization }
