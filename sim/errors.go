package sim

import "errors"

var (
	ErrEmptyTable     = errors.New("empty feature table")
	ErrMissingColumn  = errors.New("missing column")
	ErrRowWidth       = errors.New("row width does not match columns")
	ErrLengthMismatch = errors.New("bar and feature row counts differ")
	ErrInvalidPrice   = errors.New("price must be finite and positive")
	ErrInvalidBalance = errors.New("initial balance must be finite and non-negative")
	ErrInvalidAction  = errors.New("invalid action")
	ErrOutOfRange     = errors.New("step past end of episode")
)
