package codec

import "errors"

var (
	ErrTruncated     = errors.New("codec: truncated data")
	ErrInvalidData   = errors.New("codec: invalid data")
	ErrStringTooLong = errors.New("codec: string too long")
)
