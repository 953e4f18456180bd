package cli

import (
	"github.com/danmuck/scadmin/internal/admin"
	"github.com/danmuck/scadmin/internal/protocol/codec"
	"github.com/danmuck/scadmin/internal/rpc"
)

type requestView struct {
	APIKey        string  `json:"api_key" yaml:"api_key"`
	APIVersion    int16   `json:"api_version" yaml:"api_version"`
	Label         string  `json:"label" yaml:"label"`
	Target        string  `json:"target" yaml:"target"`
	SpuID         *int32  `json:"spu_id,omitempty" yaml:"spu_id,omitempty"`
	CorrelationID *uint32 `json:"correlation_id,omitempty" yaml:"correlation_id,omitempty"`
	ClientID      string  `json:"client_id,omitempty" yaml:"client_id,omitempty"`
}

type encodedView struct {
	Label string `json:"label" yaml:"label"`
	Size  int    `json:"size" yaml:"size"`
	Hex   string `json:"hex" yaml:"hex"`
}

func newRequestView(req admin.DeleteRequest, version codec.Version) requestView {
	v := requestView{
		APIKey:     req.APIKey().String(),
		APIVersion: int16(version),
		Label:      req.Label(),
		Target:     admin.DeleteTarget(req),
	}
	if r, ok := req.(admin.DeleteCustomSpu); ok {
		if id, byID := r.Key.ID(); byID {
			v.SpuID = &id
		}
	}
	return v
}

func withHeader(v requestView, hdr rpc.RequestHeader) requestView {
	id := hdr.CorrelationID
	v.CorrelationID = &id
	v.ClientID = hdr.ClientID
	return v
}
