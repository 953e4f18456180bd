package admin

import (
	"fmt"
	"io"

	"github.com/danmuck/scadmin/internal/protocol/codec"
)

// ErrorCode is the outcome code carried by a Status.
type ErrorCode int16

const (
	ErrorUnknown          ErrorCode = -1
	ErrorNone             ErrorCode = 0
	ErrorInvalidRequest   ErrorCode = 1
	ErrorTopicNotFound    ErrorCode = 2
	ErrorSpuNotFound      ErrorCode = 3
	ErrorSpuGroupNotFound ErrorCode = 4
	ErrorDeleteFailed     ErrorCode = 5
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorNone:
		return "none"
	case ErrorInvalidRequest:
		return "invalid_request"
	case ErrorTopicNotFound:
		return "topic_not_found"
	case ErrorSpuNotFound:
		return "spu_not_found"
	case ErrorSpuGroupNotFound:
		return "spu_group_not_found"
	case ErrorDeleteFailed:
		return "delete_failed"
	default:
		return "unknown"
	}
}

// Status is the outcome of one admin operation on a named resource.
type Status struct {
	Name         string
	ErrorCode    ErrorCode
	ErrorMessage *string
}

func NewStatusOK(name string) Status {
	return Status{Name: name}
}

// NewStatus builds a Status; an empty msg leaves ErrorMessage unset.
func NewStatus(name string, code ErrorCode, msg string) Status {
	s := Status{Name: name, ErrorCode: code}
	if msg != "" {
		s.ErrorMessage = &msg
	}
	return s
}

func (s Status) IsOK() bool {
	return s.ErrorCode == ErrorNone
}

// Err returns nil for a successful status and a descriptive error otherwise.
func (s Status) Err() error {
	if s.IsOK() {
		return nil
	}
	if s.ErrorMessage != nil {
		return fmt.Errorf("admin: %s %s: %s", s.Name, s.ErrorCode, *s.ErrorMessage)
	}
	return fmt.Errorf("admin: %s %s", s.Name, s.ErrorCode)
}

func (s Status) WriteSize(version codec.Version) int {
	return codec.StringSize(s.Name, version) +
		codec.Int16Size +
		codec.OptionalStringSize(s.ErrorMessage, version)
}

func (s Status) Encode(w io.Writer, version codec.Version) error {
	if err := codec.WriteString(w, s.Name, version); err != nil {
		return err
	}
	if err := codec.WriteInt16(w, int16(s.ErrorCode)); err != nil {
		return err
	}
	return codec.WriteOptionalString(w, s.ErrorMessage, version)
}

// Decode replaces s with the status read from r. s is untouched on error.
func (s *Status) Decode(r io.Reader, version codec.Version) error {
	name, err := codec.ReadString(r, version)
	if err != nil {
		return err
	}
	code, err := codec.ReadInt16(r)
	if err != nil {
		return err
	}
	msg, err := codec.ReadOptionalString(r, version)
	if err != nil {
		return err
	}
	*s = Status{Name: name, ErrorCode: ErrorCode(code), ErrorMessage: msg}
	return nil
}
