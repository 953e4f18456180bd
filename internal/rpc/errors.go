package rpc

import "errors"

var (
	ErrNilRequest         = errors.New("rpc: nil request")
	ErrUnsupportedAPIKey  = errors.New("rpc: unsupported api key")
	ErrTrailingBytes      = errors.New("rpc: trailing payload bytes")
	ErrSizeMismatch       = errors.New("rpc: encoded size mismatch")
	ErrUnexpectedResponse = errors.New("rpc: expected request frame, got response")
	ErrUnexpectedRequest  = errors.New("rpc: expected response frame, got request")
)
