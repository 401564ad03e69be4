package ik

import (
	"errors"
)

// Err* are the errors exported by this package.
var (
	ErrInvalidConfig     = errors.New("invalid chain config")
	ErrTooFewJoints      = errors.New("chain requires at least two joints")
	ErrDegenerateSegment = errors.New("chain has a zero-length segment")
	ErrDisabled          = errors.New("chain is disabled")
)
