package rpc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/danmuck/scadmin/internal/admin"
	"github.com/danmuck/scadmin/internal/protocol/codec"
	"github.com/danmuck/scadmin/internal/protocol/frame"
)

// RequestHeader identifies one request/response exchange.
type RequestHeader struct {
	APIKey        admin.APIKey
	APIVersion    codec.Version
	CorrelationID uint32
	ClientID      string
}

// NewRequestHeader returns a header for req at its default API version.
func NewRequestHeader(req admin.Request, correlationID uint32, clientID string) RequestHeader {
	return RequestHeader{
		APIKey:        req.APIKey(),
		APIVersion:    req.DefaultAPIVersion(),
		CorrelationID: correlationID,
		ClientID:      clientID,
	}
}

type requestDecoder func(r io.Reader, version codec.Version) (admin.Request, error)

var requestDecoders = map[admin.APIKey]requestDecoder{
	admin.APIKeyDelete: func(r io.Reader, version codec.Version) (admin.Request, error) {
		return admin.Decode(r, version)
	},
}

// EncodeRequest writes req as one request frame. The payload buffer is
// sized from req.WriteSize before encoding.
func EncodeRequest(w io.Writer, hdr RequestHeader, req admin.Request, limits frame.Limits) error {
	if req == nil {
		return ErrNilRequest
	}
	hdr.APIKey = req.APIKey()
	payload, err := encodePayload(req, hdr.APIVersion)
	if err != nil {
		return err
	}
	return frame.WriteFrame(w, frame.Frame{
		Header:   frameHeader(hdr, 0),
		ClientID: hdr.ClientID,
		Payload:  payload,
	}, limits)
}

// DecodeRequest dispatches the frame payload on its API key.
func DecodeRequest(f frame.Frame) (RequestHeader, admin.Request, error) {
	hdr := headerFrom(f)
	if f.IsResponse() {
		return hdr, nil, ErrUnexpectedResponse
	}
	decode, ok := requestDecoders[hdr.APIKey]
	if !ok {
		return hdr, nil, fmt.Errorf("%w: %s", ErrUnsupportedAPIKey, hdr.APIKey)
	}
	r := bytes.NewReader(f.Payload)
	req, err := decode(r, hdr.APIVersion)
	if err != nil {
		return hdr, nil, err
	}
	if r.Len() != 0 {
		return hdr, nil, fmt.Errorf("%w: %d", ErrTrailingBytes, r.Len())
	}
	return hdr, req, nil
}

// EncodeResponse writes resp as the response frame for hdr.
func EncodeResponse(w io.Writer, hdr RequestHeader, resp admin.Response, isError bool, limits frame.Limits) error {
	payload, err := encodePayload(resp, hdr.APIVersion)
	if err != nil {
		return err
	}
	flags := frame.FlagIsResponse
	if isError {
		flags |= frame.FlagIsError
	}
	return frame.WriteFrame(w, frame.Frame{
		Header:   frameHeader(hdr, flags),
		ClientID: hdr.ClientID,
		Payload:  payload,
	}, limits)
}

// DecodeResponse decodes the response paired with the frame's API key.
func DecodeResponse(f frame.Frame) (RequestHeader, admin.Response, error) {
	hdr := headerFrom(f)
	if !f.IsResponse() {
		return hdr, nil, ErrUnexpectedRequest
	}
	resp, ok := admin.NewResponse(hdr.APIKey)
	if !ok {
		return hdr, nil, fmt.Errorf("%w: %s", ErrUnsupportedAPIKey, hdr.APIKey)
	}
	r := bytes.NewReader(f.Payload)
	if err := resp.Decode(r, hdr.APIVersion); err != nil {
		return hdr, nil, err
	}
	if r.Len() != 0 {
		return hdr, nil, fmt.Errorf("%w: %d", ErrTrailingBytes, r.Len())
	}
	return hdr, resp, nil
}

// DecodeStatusResponse reads one delete response frame from r.
func DecodeStatusResponse(r io.Reader, limits frame.Limits) (RequestHeader, admin.Status, error) {
	f, err := frame.ReadFrame(r, limits)
	if err != nil {
		return RequestHeader{}, admin.Status{}, err
	}
	hdr, resp, err := DecodeResponse(f)
	if err != nil {
		return hdr, admin.Status{}, err
	}
	status, ok := resp.(*admin.Status)
	if !ok {
		return hdr, admin.Status{}, fmt.Errorf("%w: %s", ErrUnsupportedAPIKey, hdr.APIKey)
	}
	return hdr, *status, nil
}

func encodePayload(e codec.Encoder, version codec.Version) ([]byte, error) {
	size := e.WriteSize(version)
	buf := bytes.NewBuffer(make([]byte, 0, size))
	if err := e.Encode(buf, version); err != nil {
		return nil, err
	}
	if buf.Len() != size {
		return nil, fmt.Errorf("%w: size=%d encoded=%d", ErrSizeMismatch, size, buf.Len())
	}
	return buf.Bytes(), nil
}

func frameHeader(hdr RequestHeader, flags uint16) frame.Header {
	return frame.Header{
		APIKey:        uint16(hdr.APIKey),
		APIVersion:    int16(hdr.APIVersion),
		Flags:         flags,
		CorrelationID: hdr.CorrelationID,
	}
}

func headerFrom(f frame.Frame) RequestHeader {
	return RequestHeader{
		APIKey:        admin.APIKey(f.Header.APIKey),
		APIVersion:    codec.Version(f.Header.APIVersion),
		CorrelationID: f.Header.CorrelationID,
		ClientID:      f.ClientID,
	}
}
