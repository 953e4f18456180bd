package codec

import "io"

// Version is the protocol version threaded through every size, encode and
// decode call. Payload codecs may branch on it independently.
type Version int16

// Encoder is a value with a version-aware wire form.
// WriteSize must equal the number of bytes Encode writes at the same version.
type Encoder interface {
	WriteSize(version Version) int
	Encode(w io.Writer, version Version) error
}

// Decoder reads its wire form from r.
type Decoder interface {
	Decode(r io.Reader, version Version) error
}

const (
	BoolSize  = 1
	Int8Size  = 1
	Int16Size = 2
	Int32Size = 4
	Int64Size = 8

	// MaxStringLen is the largest string an i16 length prefix can carry.
	MaxStringLen = 1<<15 - 1
)

// StringSize returns the encoded length of s.
func StringSize(s string, _ Version) int {
	return Int16Size + len(s)
}

// OptionalStringSize returns the encoded length of an optional string.
func OptionalStringSize(s *string, version Version) int {
	if s == nil {
		return BoolSize
	}
	return BoolSize + StringSize(*s, version)
}
