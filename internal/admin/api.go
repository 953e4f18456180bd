package admin

import (
	"fmt"

	"github.com/danmuck/scadmin/internal/protocol/codec"
)

// APIKey routes an admin request to its handler.
type APIKey uint16

const (
	APIKeyApiVersion APIKey = 18
	APIKeyCreate     APIKey = 1001
	APIKeyDelete     APIKey = 1002
	APIKeyList       APIKey = 1003
	APIKeyWatch      APIKey = 1004
)

func (k APIKey) String() string {
	switch k {
	case APIKeyApiVersion:
		return "ApiVersion"
	case APIKeyCreate:
		return "Create"
	case APIKeyDelete:
		return "Delete"
	case APIKeyList:
		return "List"
	case APIKeyWatch:
		return "Watch"
	default:
		return fmt.Sprintf("APIKey(%d)", uint16(k))
	}
}

// Request is an admin request payload.
type Request interface {
	codec.Encoder
	APIKey() APIKey
	DefaultAPIVersion() codec.Version
}

// Response is an admin response payload.
type Response interface {
	codec.Encoder
	codec.Decoder
}

// NewResponse returns an empty response value paired with key.
func NewResponse(key APIKey) (Response, bool) {
	switch key {
	case APIKeyDelete:
		return &Status{}, true
	default:
		return nil, false
	}
}
