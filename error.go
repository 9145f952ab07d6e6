package bwtree

import "errors"

var (
	ErrUnsupported   = errors.New("unsupported")
	ErrOutOfRange    = errors.New("out of range")
	ErrInvalidConfig = errors.New("invalid config")
)
