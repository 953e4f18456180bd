// Package spu owns the custom streaming processing unit (SPU) resource.
package spu

import (
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/danmuck/scadmin/internal/protocol/codec"
)

// CustomLabel is the admin wire discriminator for custom SPUs.
const CustomLabel = "CustomSpu"

// SpuID is the numeric identity of an SPU.
type SpuID = int32

// Key discriminants on the wire.
const (
	keyTagName uint8 = 0
	keyTagID   uint8 = 1
)

// CustomSpuKey addresses a custom SPU by name or by id.
// The zero value is ID(0).
type CustomSpuKey struct {
	name   string
	id     SpuID
	byName bool
}

// NameKey builds a key addressing an SPU by name.
func NameKey(name string) CustomSpuKey {
	return CustomSpuKey{name: name, byName: true}
}

// IDKey builds a key addressing an SPU by id.
func IDKey(id SpuID) CustomSpuKey {
	return CustomSpuKey{id: id}
}

// KeyValue is any value convertible into a CustomSpuKey.
type KeyValue interface {
	~int32 | ~string
}

// Key converts v into a CustomSpuKey. Integers address by id, strings by name.
func Key[T KeyValue](v T) CustomSpuKey {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return NameKey(rv.String())
	}
	return IDKey(SpuID(rv.Int()))
}

// Name returns the addressed name and whether the key is name based.
func (k CustomSpuKey) Name() (string, bool) {
	return k.name, k.byName
}

// ID returns the addressed id and whether the key is id based.
func (k CustomSpuKey) ID() (SpuID, bool) {
	return k.id, !k.byName
}

func (k CustomSpuKey) String() string {
	if k.byName {
		return k.name
	}
	return strconv.FormatInt(int64(k.id), 10)
}

func (k CustomSpuKey) WriteSize(version codec.Version) int {
	if k.byName {
		return codec.Int8Size + codec.StringSize(k.name, version)
	}
	return codec.Int8Size + codec.Int32Size
}

func (k CustomSpuKey) Encode(w io.Writer, version codec.Version) error {
	if k.byName {
		if err := codec.WriteUint8(w, keyTagName); err != nil {
			return err
		}
		return codec.WriteString(w, k.name, version)
	}
	if err := codec.WriteUint8(w, keyTagID); err != nil {
		return err
	}
	return codec.WriteInt32(w, k.id)
}

// Decode replaces k with the key read from r. k is untouched on error.
func (k *CustomSpuKey) Decode(r io.Reader, version codec.Version) error {
	tag, err := codec.ReadUint8(r)
	if err != nil {
		return err
	}
	switch tag {
	case keyTagName:
		name, err := codec.ReadString(r, version)
		if err != nil {
			return err
		}
		*k = NameKey(name)
	case keyTagID:
		id, err := codec.ReadInt32(r)
		if err != nil {
			return err
		}
		*k = IDKey(id)
	default:
		return fmt.Errorf("%w: custom spu key tag %d", codec.ErrInvalidData, tag)
	}
	return nil
}
