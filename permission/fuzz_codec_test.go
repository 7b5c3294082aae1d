package permission

import (
	"bytes"
	"errors"
	"testing"
)

// FuzzSetCodecRoundTrip exercises the binary decode path with arbitrary bytes.
// Goal: no panics; accepted inputs must roundtrip byte-for-byte.
func FuzzSetCodecRoundTrip(f *testing.F) {
	f.Add([]byte{0, 0, 0, 0})
	f.Add([]byte{0, 0, 0x0f, 0xff})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff})

	// Invalid sizes.
	f.Add([]byte{})
	f.Add([]byte{1, 2, 3})
	f.Add(make([]byte, 8))

	f.Fuzz(func(t *testing.T, data []byte) {
		set, err := DecodeSet(data)
		if err != nil {
			if !errors.Is(err, ErrInvalidLength) && !errors.Is(err, ErrInvalidBits) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}
		if !set.IsValid() {
			t.Fatalf("DecodeSet accepted unknown bits: %#x", uint32(set))
		}

		encoded := EncodeSet(set)
		if !bytes.Equal(encoded, data) {
			t.Fatalf("roundtrip mismatch: %x vs %x", encoded, data)
		}
	})
}

// FuzzUnmarshalJSON checks that arbitrary JSON never panics and never yields
// a set with unknown bits.
func FuzzUnmarshalJSON(f *testing.F) {
	f.Add([]byte(`3`))
	f.Add([]byte(`-1`))
	f.Add([]byte(`4294967295`))
	f.Add([]byte(`"read | write"`))
	f.Add([]byte(`{}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		var s Set
		if err := s.UnmarshalJSON(data); err != nil {
			return
		}
		if !s.IsValid() {
			t.Fatalf("UnmarshalJSON accepted unknown bits: %#x from %q", uint32(s), data)
		}
	})
}
