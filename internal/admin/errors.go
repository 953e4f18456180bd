package admin

import (
	"errors"
	"fmt"

	"github.com/danmuck/scadmin/internal/protocol/codec"
)

var (
	ErrNilRequest      = errors.New("admin: nil delete request")
	ErrInvalidSpecType = errors.New("admin: invalid spec type")
)

// InvalidSpecTypeError reports a delete tag outside the known label set.
// It matches ErrInvalidSpecType and codec.ErrInvalidData under errors.Is.
type InvalidSpecTypeError struct {
	Tag string
}

func (e InvalidSpecTypeError) Error() string {
	return fmt.Sprintf("admin: invalid spec type %s", e.Tag)
}

func (e InvalidSpecTypeError) Is(target error) bool {
	return target == ErrInvalidSpecType
}

func (e InvalidSpecTypeError) Unwrap() error {
	return codec.ErrInvalidData
}
