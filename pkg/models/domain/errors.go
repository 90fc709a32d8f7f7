package domain

import "errors"

// Sentinel errors shared by services and stores. Callers wrap them with
// context and the transport layer maps them with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrOutOfRange   = errors.New("out of ephemeris range")
	ErrNotFound     = errors.New("not found")
	ErrMaxDepth     = errors.New("maximum dasha depth reached")
)
