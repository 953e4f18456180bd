package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	Magic          uint32 = 0x5CAD0001
	FixedHeaderLen uint16 = 20
	FlagIsResponse uint16 = 0x01
	FlagIsError    uint16 = 0x02
)

var (
	ErrShortHeader       = errors.New("frame: short fixed header")
	ErrInvalidMagic      = errors.New("frame: invalid magic")
	ErrHeaderLenTooSmall = errors.New("frame: header_len smaller than fixed header")
	ErrPayloadTooLarge   = errors.New("frame: payload too large")
	ErrClientIDTooLarge  = errors.New("frame: client id too large")
)

// Header is the fixed wire header of one admin RPC frame.
//
//	magic u32 | api_key u16 | api_version i16 | flags u16 | header_len u16 |
//	correlation_id u32 | payload_len u32
//
// header_len covers the fixed header plus the client id bytes that follow it.
type Header struct {
	Magic         uint32
	APIKey        uint16
	APIVersion    int16
	Flags         uint16
	HeaderLen     uint16
	CorrelationID uint32
	PayloadLen    uint32
}

// Frame is one complete wire message.
type Frame struct {
	Header   Header
	ClientID string
	Payload  []byte
}

func (f Frame) IsResponse() bool {
	return f.Header.Flags&FlagIsResponse != 0
}

func (f Frame) IsError() bool {
	return f.Header.Flags&FlagIsError != 0
}

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxClientIDBytes uint32
	MaxPayloadBytes  uint32
}

func DefaultLimits() Limits {
	return Limits{
		MaxClientIDBytes: 1024,
		MaxPayloadBytes:  8 * 1024 * 1024,
	}
}

func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var fixed [FixedHeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}

	h, err := DecodeHeader(fixed[:])
	if err != nil {
		return Frame{}, err
	}
	if h.Magic != Magic {
		return Frame{}, ErrInvalidMagic
	}
	if h.HeaderLen < FixedHeaderLen {
		return Frame{}, ErrHeaderLenTooSmall
	}

	clientIDLen := uint32(h.HeaderLen - FixedHeaderLen)
	if clientIDLen > limits.MaxClientIDBytes {
		return Frame{}, ErrClientIDTooLarge
	}
	if h.PayloadLen > limits.MaxPayloadBytes {
		return Frame{}, ErrPayloadTooLarge
	}

	clientID := make([]byte, clientIDLen)
	if clientIDLen > 0 {
		if _, err := io.ReadFull(r, clientID); err != nil {
			return Frame{}, err
		}
	}

	payload := make([]byte, h.PayloadLen)
	if h.PayloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Frame{}, err
		}
	}

	return Frame{Header: h, ClientID: string(clientID), Payload: payload}, nil
}

// WriteFrame fills magic, header_len and payload_len from f and writes it.
func WriteFrame(w io.Writer, f Frame, limits Limits) error {
	clientIDLen := uint64(len(f.ClientID))
	payloadLen := uint64(len(f.Payload))
	if clientIDLen > uint64(limits.MaxClientIDBytes) || clientIDLen > uint64(^uint16(0)-FixedHeaderLen) {
		return ErrClientIDTooLarge
	}
	if payloadLen > uint64(limits.MaxPayloadBytes) {
		return ErrPayloadTooLarge
	}

	h := f.Header
	h.Magic = Magic
	h.HeaderLen = FixedHeaderLen + uint16(clientIDLen)
	h.PayloadLen = uint32(payloadLen)

	if _, err := w.Write(EncodeHeader(h)); err != nil {
		return err
	}
	if clientIDLen > 0 {
		if _, err := io.WriteString(w, f.ClientID); err != nil {
			return err
		}
	}
	if payloadLen > 0 {
		if _, err := w.Write(f.Payload); err != nil {
			return err
		}
	}
	return nil
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, FixedHeaderLen)
	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.BigEndian.PutUint16(buf[4:6], h.APIKey)
	binary.BigEndian.PutUint16(buf[6:8], uint16(h.APIVersion))
	binary.BigEndian.PutUint16(buf[8:10], h.Flags)
	binary.BigEndian.PutUint16(buf[10:12], h.HeaderLen)
	binary.BigEndian.PutUint32(buf[12:16], h.CorrelationID)
	binary.BigEndian.PutUint32(buf[16:20], h.PayloadLen)
	return buf
}

func DecodeHeader(b []byte) (Header, error) {
	if len(b) != int(FixedHeaderLen) {
		return Header{}, fmt.Errorf("frame: invalid fixed header length: %d", len(b))
	}
	return Header{
		Magic:         binary.BigEndian.Uint32(b[0:4]),
		APIKey:        binary.BigEndian.Uint16(b[4:6]),
		APIVersion:    int16(binary.BigEndian.Uint16(b[6:8])),
		Flags:         binary.BigEndian.Uint16(b[8:10]),
		HeaderLen:     binary.BigEndian.Uint16(b[10:12]),
		CorrelationID: binary.BigEndian.Uint32(b[12:16]),
		PayloadLen:    binary.BigEndian.Uint32(b[16:20]),
	}, nil
}
