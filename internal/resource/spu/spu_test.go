package spu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/scadmin/internal/protocol/codec"
	"github.com/danmuck/scadmin/internal/testutil/testlog"
)

type spuName string

type rackID int32

func TestKeyConversionIsTotal(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		got  CustomSpuKey
		want CustomSpuKey
	}{
		{Key("spu-a"), NameKey("spu-a")},
		{Key(int32(7)), IDKey(7)},
		{Key(spuName("spu-b")), NameKey("spu-b")},
		{Key(rackID(-2)), IDKey(-2)},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("key mismatch: got=%+v want=%+v", tc.got, tc.want)
		}
	}
}

func TestZeroValueIsIDZero(t *testing.T) {
	testlog.Start(t)
	var k CustomSpuKey
	id, ok := k.ID()
	if !ok || id != 0 {
		t.Fatalf("expected ID(0), got %+v", k)
	}
	if _, ok := k.Name(); ok {
		t.Fatalf("zero key must not be name based")
	}
}

func TestCustomSpuKeyRoundTrip(t *testing.T) {
	testlog.Start(t)
	for _, in := range []CustomSpuKey{IDKey(0), IDKey(5001), IDKey(-1), NameKey(""), NameKey("custom-spu-1")} {
		for _, ver := range []codec.Version{0, 1, 2} {
			var buf bytes.Buffer
			if err := in.Encode(&buf, ver); err != nil {
				t.Fatalf("encode %v: %v", in, err)
			}
			if buf.Len() != in.WriteSize(ver) {
				t.Fatalf("size mismatch for %v v%d: got=%d want=%d", in, ver, buf.Len(), in.WriteSize(ver))
			}
			var out CustomSpuKey
			if err := out.Decode(&buf, ver); err != nil {
				t.Fatalf("decode %v: %v", in, err)
			}
			if out != in {
				t.Fatalf("round-trip mismatch: got=%+v want=%+v", out, in)
			}
		}
	}
}

func TestDecodeUnknownTagKeepsKey(t *testing.T) {
	testlog.Start(t)
	k := NameKey("keep")
	err := k.Decode(bytes.NewReader([]byte{9, 0, 0, 0, 1}), 1)
	if !errors.Is(err, codec.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
	if k != NameKey("keep") {
		t.Fatalf("key mutated on failure: %+v", k)
	}
}

func TestDecodeTruncatedID(t *testing.T) {
	testlog.Start(t)
	var k CustomSpuKey
	err := k.Decode(bytes.NewReader([]byte{keyTagID, 0, 1}), 1)
	if !errors.Is(err, codec.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
