package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrFetch        = errors.New("fetch failed")
	ErrDecode       = errors.New("decode failed")
	ErrStorage      = errors.New("storage failure")
)
