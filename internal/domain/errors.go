package domain

import "errors"

// Domain errors
var (
	ErrFraming        = errors.New("datagram framing invalid")
	ErrDecode         = errors.New("payload decode failed")
	ErrUnknownField   = errors.New("unknown field name")
	ErrRowRange       = errors.New("row index out of range")
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Error codes for API responses
const (
	ErrCodeFraming      = "FRAMING_INVALID"
	ErrCodeDecode       = "DECODE_FAILED"
	ErrCodeUnknownField = "UNKNOWN_FIELD"
	ErrCodeRowRange     = "ROW_OUT_OF_RANGE"
)

// ErrorCode returns the API error code for a domain error
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrFraming):
		return ErrCodeFraming
	case errors.Is(err, ErrDecode):
		return ErrCodeDecode
	case errors.Is(err, ErrUnknownField):
		return ErrCodeUnknownField
	case errors.Is(err, ErrRowRange):
		return ErrCodeRowRange
	default:
		return "INTERNAL_ERROR"
	}
}
