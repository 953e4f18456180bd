package admin

import (
	"io"

	"github.com/danmuck/scadmin/internal/protocol/codec"
	"github.com/danmuck/scadmin/internal/resource/spg"
	"github.com/danmuck/scadmin/internal/resource/spu"
	"github.com/danmuck/scadmin/internal/resource/topic"
	"github.com/rs/zerolog/log"
)

// DeleteAPIVersion is the default protocol version for delete requests.
const DeleteAPIVersion codec.Version = 1

// DeleteRequest asks the control plane to remove one resource instance.
// It is a closed union: DeleteTopic, DeleteCustomSpu or DeleteSpuGroup.
//
// Wire form: [label string][variant payload]. No outer length is written;
// framing belongs to the RPC envelope.
type DeleteRequest interface {
	Request
	// Label is the wire discriminator of the active variant.
	Label() string
	payload() codec.Encoder
}

// DeleteLabels returns the known delete discriminators in dispatch order.
func DeleteLabels() []string {
	return []string{topic.Label, spu.CustomLabel, spg.Label}
}

// DefaultDeleteRequest is a placeholder value for callers that need one
// before a tag is known. It is never the result of Decode.
func DefaultDeleteRequest() DeleteRequest {
	return DeleteCustomSpu{Key: spu.IDKey(0)}
}

type deleteAPI struct{}

func (deleteAPI) APIKey() APIKey                   { return APIKeyDelete }
func (deleteAPI) DefaultAPIVersion() codec.Version { return DeleteAPIVersion }

// DeleteTopic removes a topic by name.
type DeleteTopic struct {
	deleteAPI
	Name topic.DeleteKey
}

func (DeleteTopic) Label() string            { return topic.Label }
func (r DeleteTopic) payload() codec.Encoder { return stringPayload(r.Name) }

func (r DeleteTopic) WriteSize(version codec.Version) int       { return WriteSize(r, version) }
func (r DeleteTopic) Encode(w io.Writer, v codec.Version) error { return Encode(w, r, v) }

// DeleteCustomSpu removes a custom SPU by name or id.
type DeleteCustomSpu struct {
	deleteAPI
	Key spu.CustomSpuKey
}

func (DeleteCustomSpu) Label() string            { return spu.CustomLabel }
func (r DeleteCustomSpu) payload() codec.Encoder { return r.Key }

func (r DeleteCustomSpu) WriteSize(version codec.Version) int       { return WriteSize(r, version) }
func (r DeleteCustomSpu) Encode(w io.Writer, v codec.Version) error { return Encode(w, r, v) }

// DeleteSpuGroup removes an SPU group by name.
type DeleteSpuGroup struct {
	deleteAPI
	Name spg.DeleteKey
}

func (DeleteSpuGroup) Label() string            { return spg.Label }
func (r DeleteSpuGroup) payload() codec.Encoder { return stringPayload(r.Name) }

func (r DeleteSpuGroup) WriteSize(version codec.Version) int       { return WriteSize(r, version) }
func (r DeleteSpuGroup) Encode(w io.Writer, v codec.Version) error { return Encode(w, r, v) }

// WriteSize returns the exact number of bytes Encode writes for req.
func WriteSize(req DeleteRequest, version codec.Version) int {
	if req == nil {
		return 0
	}
	return codec.StringSize(req.Label(), version) + req.payload().WriteSize(version)
}

// Encode writes the label of req followed by its payload. The first error
// is returned as is; w may hold a partial write and must be discarded.
func Encode(w io.Writer, req DeleteRequest, version codec.Version) error {
	if req == nil {
		return ErrNilRequest
	}
	if err := codec.WriteString(w, req.Label(), version); err != nil {
		return err
	}
	return req.payload().Encode(w, version)
}

// Decode reads one delete request. The tag selects the variant; an unknown
// tag fails with InvalidSpecTypeError. Payload errors are returned as is.
func Decode(r io.Reader, version codec.Version) (DeleteRequest, error) {
	typ, err := codec.ReadString(r, version)
	if err != nil {
		return nil, err
	}
	log.Trace().Str("type", typ).Msg("decoded delete type")

	switch typ {
	case topic.Label:
		name, err := codec.ReadString(r, version)
		if err != nil {
			return nil, err
		}
		return DeleteTopic{Name: name}, nil
	case spu.CustomLabel:
		var key spu.CustomSpuKey
		if err := key.Decode(r, version); err != nil {
			return nil, err
		}
		return DeleteCustomSpu{Key: key}, nil
	case spg.Label:
		name, err := codec.ReadString(r, version)
		if err != nil {
			return nil, err
		}
		return DeleteSpuGroup{Name: name}, nil
	default:
		return nil, InvalidSpecTypeError{Tag: typ}
	}
}

type stringPayload string

func (s stringPayload) WriteSize(version codec.Version) int {
	return codec.StringSize(string(s), version)
}

func (s stringPayload) Encode(w io.Writer, version codec.Version) error {
	return codec.WriteString(w, string(s), version)
}

// DeleteTarget returns the human readable instance name addressed by req.
func DeleteTarget(req DeleteRequest) string {
	switch r := req.(type) {
	case DeleteTopic:
		return r.Name
	case DeleteCustomSpu:
		return r.Key.String()
	case DeleteSpuGroup:
		return r.Name
	default:
		return ""
	}
}
