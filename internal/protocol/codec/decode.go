package codec

import (
	"encoding/binary"
	"fmt"
	"io"
)

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return ErrTruncated
	}
	return nil
}

// ReadBool reads a single 0/1 byte. Any other value is invalid data.
func ReadBool(r io.Reader) (bool, error) {
	v, err := ReadUint8(r)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: bool value %d", ErrInvalidData, v)
	}
}

func ReadUint8(r io.Reader) (uint8, error) {
	var buf [Int8Size]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func ReadInt8(r io.Reader) (int8, error) {
	v, err := ReadUint8(r)
	return int8(v), err
}

func ReadUint16(r io.Reader) (uint16, error) {
	var buf [Int16Size]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func ReadInt16(r io.Reader) (int16, error) {
	v, err := ReadUint16(r)
	return int16(v), err
}

func ReadUint32(r io.Reader) (uint32, error) {
	var buf [Int32Size]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func ReadInt32(r io.Reader) (int32, error) {
	v, err := ReadUint32(r)
	return int32(v), err
}

func ReadInt64(r io.Reader) (int64, error) {
	var buf [Int64Size]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// ReadString reads an i16 length-prefixed string.
func ReadString(r io.Reader, _ Version) (string, error) {
	n, err := ReadInt16(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("%w: string length %d", ErrInvalidData, n)
	}
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadOptionalString reads a presence byte and, when set, a string.
func ReadOptionalString(r io.Reader, version Version) (*string, error) {
	present, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	s, err := ReadString(r, version)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
