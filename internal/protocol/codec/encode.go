package codec

import (
	"encoding/binary"
	"io"
)

// WriteBool writes b as a single 0/1 byte.
func WriteBool(w io.Writer, b bool) error {
	v := uint8(0)
	if b {
		v = 1
	}
	return WriteUint8(w, v)
}

func WriteUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func WriteInt8(w io.Writer, v int8) error {
	return WriteUint8(w, uint8(v))
}

func WriteUint16(w io.Writer, v uint16) error {
	var buf [Int16Size]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func WriteInt16(w io.Writer, v int16) error {
	return WriteUint16(w, uint16(v))
}

func WriteUint32(w io.Writer, v uint32) error {
	var buf [Int32Size]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func WriteInt32(w io.Writer, v int32) error {
	return WriteUint32(w, uint32(v))
}

func WriteInt64(w io.Writer, v int64) error {
	var buf [Int64Size]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

// WriteString writes s as an i16 length followed by its bytes.
func WriteString(w io.Writer, s string, _ Version) error {
	if len(s) > MaxStringLen {
		return ErrStringTooLong
	}
	if err := WriteInt16(w, int16(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	_, err := io.WriteString(w, s)
	return err
}

// WriteOptionalString writes a presence byte, then the string when present.
func WriteOptionalString(w io.Writer, s *string, version Version) error {
	if err := WriteBool(w, s != nil); err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	return WriteString(w, *s, version)
}
