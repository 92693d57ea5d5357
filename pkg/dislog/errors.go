package dislog

import "github.com/pkg/errors"

// Errors returned by the dislog packages
var (
	// ErrParse is returned whenever bytes cannot be interpreted as a valid
	// scalar or point encoding.
	ErrParse = errors.New("dislog: parse error")

	// ErrInvalidEncoding is returned by the text decoders. It wraps ErrParse
	// and carries no detail about which check failed.
	ErrInvalidEncoding = errors.WithMessage(ErrParse, "invalid encoding")
)
