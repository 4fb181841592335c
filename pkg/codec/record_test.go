package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

func TestRecordCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name   string
		record Record
	}{
		{
			name:   "reference scenario",
			record: Record{Name: "Juan", Age: 30},
		},
		{
			name:   "empty name",
			record: Record{Name: "", Age: 1},
		},
		{
			name:   "zero age",
			record: Record{Name: "someone", Age: 0},
		},
		{
			name:   "negative age",
			record: Record{Name: "debtor", Age: -7},
		},
		{
			name:   "age bounds",
			record: Record{Name: "extremes", Age: -2147483648},
		},
		{
			name:   "max age",
			record: Record{Name: "extremes", Age: 2147483647},
		},
		{
			name:   "multi-byte UTF-8 name",
			record: Record{Name: "José Ñandú 日本", Age: 44},
		},
		{
			name:   "long name",
			record: Record{Name: strings.Repeat("n", 1024), Age: 99},
		},
		{
			name:   "maximum name length",
			record: Record{Name: strings.Repeat("x", MaxNameLength), Age: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := codec.Encode(tc.record)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			if len(encoded) != EncodedSize(tc.record) {
				t.Errorf("encoded size mismatch: got %d, want %d", len(encoded), EncodedSize(tc.record))
			}

			decoded, err := codec.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if decoded != tc.record {
				t.Errorf("round trip mismatch: got %+v, want %+v", decoded, tc.record)
			}
		})
	}
}

func TestRecordCodec_EncodeDeterministic(t *testing.T) {
	codec := NewRecordCodec()
	record := Record{Name: "Juan", Age: 30}

	first, err := codec.Encode(record)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	second, err := codec.Encode(record)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("encoding is not deterministic: %x vs %x", first, second)
	}
}

func TestRecordCodec_EncodeLayout(t *testing.T) {
	codec := NewRecordCodec()

	encoded, err := codec.Encode(Record{Name: "Juan", Age: 30})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if len(encoded) != 16 {
		t.Fatalf("expected 16 bytes for a 4-byte name, got %d", len(encoded))
	}
	if !bytes.Equal(encoded[0:4], []byte("PRSN")) {
		t.Errorf("bad magic: %x", encoded[0:4])
	}
	if got := binary.BigEndian.Uint16(encoded[4:6]); got != Version {
		t.Errorf("bad version: got %d, want %d", got, Version)
	}
	if got := binary.BigEndian.Uint16(encoded[6:8]); got != 4 {
		t.Errorf("bad name length: got %d, want 4", got)
	}
	if got := string(encoded[8:12]); got != "Juan" {
		t.Errorf("bad name bytes: %q", got)
	}
	if got := int32(binary.BigEndian.Uint32(encoded[12:16])); got != 30 {
		t.Errorf("bad age: got %d, want 30", got)
	}
}

func TestRecordCodec_EncodeNameTooLong(t *testing.T) {
	codec := NewRecordCodec()

	_, err := codec.Encode(Record{Name: strings.Repeat("x", MaxNameLength+1), Age: 1})
	if !errors.Is(err, ErrNameTooLong) {
		t.Errorf("expected ErrNameTooLong, got %v", err)
	}
}

func TestRecordCodec_DecodeEmptyInput(t *testing.T) {
	codec := NewRecordCodec()

	_, err := codec.Decode(nil)
	if !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("expected ErrTruncatedInput for empty input, got %v", err)
	}

	_, err = codec.Decode([]byte{})
	if !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("expected ErrTruncatedInput for zero-length input, got %v", err)
	}
}

// Every strict prefix of a valid encoding must fail as truncated input,
// wherever the cut lands.
func TestRecordCodec_DecodeTruncationSweep(t *testing.T) {
	codec := NewRecordCodec()

	encoded, err := codec.Encode(Record{Name: "Juan", Age: 30})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	for k := 0; k < len(encoded); k++ {
		_, err := codec.Decode(encoded[:k])
		if err == nil {
			t.Fatalf("decode of %d-byte prefix unexpectedly succeeded", k)
		}
		if !errors.Is(err, ErrTruncatedInput) {
			t.Errorf("prefix length %d: expected ErrTruncatedInput, got %v", k, err)
		}
	}
}

// Flipping any byte inside the format tag must be reported as an unknown
// format, not as some later field error.
func TestRecordCodec_DecodeTagFlip(t *testing.T) {
	codec := NewRecordCodec()

	encoded, err := codec.Encode(Record{Name: "Juan", Age: 30})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	for i := 0; i < 4; i++ {
		corrupted := make([]byte, len(encoded))
		copy(corrupted, encoded)
		corrupted[i] ^= 0xFF

		_, err := codec.Decode(corrupted)
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("tag byte %d flipped: expected ErrUnknownFormat, got %v", i, err)
		}
	}
}

func TestRecordCodec_DecodeVersionGuard(t *testing.T) {
	codec := NewRecordCodec()

	encoded, err := codec.Encode(Record{Name: "Juan", Age: 30})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	t.Run("newer version rejected even when otherwise well-formed", func(t *testing.T) {
		future := make([]byte, len(encoded))
		copy(future, encoded)
		binary.BigEndian.PutUint16(future[4:6], MaxVersion+1)

		_, err := codec.Decode(future)
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("expected ErrUnsupportedVersion, got %v", err)
		}
	})

	t.Run("version zero rejected as malformed", func(t *testing.T) {
		zero := make([]byte, len(encoded))
		copy(zero, encoded)
		binary.BigEndian.PutUint16(zero[4:6], 0)

		_, err := codec.Decode(zero)
		if !errors.Is(err, ErrMalformedField) {
			t.Errorf("expected ErrMalformedField, got %v", err)
		}
	})
}

// A crafted name-length prefix pointing past the end of the buffer must
// fail as a malformed field without reading out of bounds.
func TestRecordCodec_DecodeLengthPrefixOverrun(t *testing.T) {
	codec := NewRecordCodec()

	buf := make([]byte, HeaderSize+ageSize)
	copy(buf[0:4], "PRSN")
	binary.BigEndian.PutUint16(buf[4:6], Version)
	binary.BigEndian.PutUint16(buf[6:8], 0xFFFF)

	_, err := codec.Decode(buf)
	if !errors.Is(err, ErrMalformedField) {
		t.Errorf("expected ErrMalformedField, got %v", err)
	}
}

func TestRecordCodec_DecodeTrailingBytes(t *testing.T) {
	codec := NewRecordCodec()

	encoded, err := codec.Encode(Record{Name: "Juan", Age: 30})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, err = codec.Decode(append(encoded, 0x00))
	if !errors.Is(err, ErrMalformedField) {
		t.Errorf("expected ErrMalformedField for trailing bytes, got %v", err)
	}
}

func TestPeekSize(t *testing.T) {
	codec := NewRecordCodec()

	encoded, err := codec.Encode(Record{Name: "Juan", Age: 30})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	size, err := PeekSize(encoded[:HeaderSize])
	if err != nil {
		t.Fatalf("PeekSize failed: %v", err)
	}
	if size != len(encoded) {
		t.Errorf("PeekSize mismatch: got %d, want %d", size, len(encoded))
	}

	t.Run("short header", func(t *testing.T) {
		_, err := PeekSize(encoded[:HeaderSize-1])
		if !errors.Is(err, ErrTruncatedInput) {
			t.Errorf("expected ErrTruncatedInput, got %v", err)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		header := make([]byte, HeaderSize)
		copy(header, encoded[:HeaderSize])
		header[0] = 'X'
		_, err := PeekSize(header)
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("expected ErrUnknownFormat, got %v", err)
		}
	})

	t.Run("future version", func(t *testing.T) {
		header := make([]byte, HeaderSize)
		copy(header, encoded[:HeaderSize])
		binary.BigEndian.PutUint16(header[4:6], MaxVersion+1)
		_, err := PeekSize(header)
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("expected ErrUnsupportedVersion, got %v", err)
		}
	})
}

func TestEncodedSize(t *testing.T) {
	testCases := []struct {
		name     string
		record   Record
		expected int
	}{
		{"empty name", Record{Name: "", Age: 0}, 12},
		{"reference scenario", Record{Name: "Juan", Age: 30}, 16},
		{"long name", Record{Name: strings.Repeat("n", 1000), Age: 1}, 1012},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EncodedSize(tc.record); got != tc.expected {
				t.Errorf("EncodedSize mismatch: got %d, want %d", got, tc.expected)
			}
		})
	}
}
