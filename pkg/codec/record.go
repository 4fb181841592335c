package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Format constants for the persona record layout.
const (
	// Version is the schema version written by Encode.
	Version uint16 = 1

	// MaxVersion is the newest schema version this codec can decode.
	MaxVersion uint16 = 1

	// HeaderSize is the fixed prefix of every record:
	// magic(4) + version(2) + name length(2).
	HeaderSize = 8

	// MaxNameLength is the largest name Encode accepts, bounded by the
	// 16-bit length prefix.
	MaxNameLength = 1<<16 - 1

	ageSize = 4
)

// magic identifies a byte sequence as a persona record.
var magic = [4]byte{'P', 'R', 'S', 'N'}

// Record is a persona record. It is a plain value; copies are independent
// and a Record is never mutated after construction.
type Record struct {
	Name string // UTF-8 text, may be empty
	Age  int32
}

// RecordCodec converts Records to their binary form and back.
// Format: [Magic(4)][Version(2)][NameLen(2)][Name][Age(4)], all integer
// fields big-endian. A RecordCodec holds no state and is safe for
// concurrent use.
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance.
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// EncodedSize returns the number of bytes Encode produces for r.
func EncodedSize(r Record) int {
	return HeaderSize + len(r.Name) + ageSize
}

// Encode serializes a record into its binary form. Encoding is
// deterministic: the same record always yields the same bytes. The only
// failure mode is a name longer than MaxNameLength bytes.
func (c *RecordCodec) Encode(r Record) ([]byte, error) {
	if len(r.Name) > MaxNameLength {
		return nil, fmt.Errorf("%w: name is %d bytes, limit is %d", ErrNameTooLong, len(r.Name), MaxNameLength)
	}

	buf := make([]byte, EncodedSize(r))
	copy(buf[0:4], magic[:])
	binary.BigEndian.PutUint16(buf[4:6], Version)
	binary.BigEndian.PutUint16(buf[6:8], uint16(len(r.Name)))
	copy(buf[HeaderSize:], r.Name)
	binary.BigEndian.PutUint32(buf[HeaderSize+len(r.Name):], uint32(r.Age))

	return buf, nil
}

// Decode deserializes a record from data. The buffer must contain exactly
// one record; trailing bytes are rejected. Decoding is a single linear
// pass that checks the remaining length before every read, so arbitrary
// input never causes an out-of-bounds access.
func (c *RecordCodec) Decode(data []byte) (Record, error) {
	if len(data) < 4 {
		return Record{}, fmt.Errorf("%w: %d bytes, need 4 for the format tag", ErrTruncatedInput, len(data))
	}
	if !bytes.Equal(data[0:4], magic[:]) {
		return Record{}, fmt.Errorf("%w: got %x, want %x", ErrUnknownFormat, data[0:4], magic)
	}

	if len(data) < 6 {
		return Record{}, fmt.Errorf("%w: %d bytes, need 6 for the schema version", ErrTruncatedInput, len(data))
	}
	version := binary.BigEndian.Uint16(data[4:6])
	if version == 0 {
		return Record{}, fmt.Errorf("%w: schema version 0", ErrMalformedField)
	}
	if version > MaxVersion {
		return Record{}, fmt.Errorf("%w: version %d, max supported is %d", ErrUnsupportedVersion, version, MaxVersion)
	}

	if len(data) < HeaderSize {
		return Record{}, fmt.Errorf("%w: %d bytes, need %d for the name length", ErrTruncatedInput, len(data), HeaderSize)
	}
	nameLen := int(binary.BigEndian.Uint16(data[6:8]))

	rest := data[HeaderSize:]
	if len(rest) < nameLen {
		// A name-length prefix overrunning the buffer and a buffer cut
		// inside the name bytes are the same observable input, so the
		// error matches both sentinels.
		return Record{}, fmt.Errorf("codec: name length %d exceeds %d remaining bytes: %w",
			nameLen, len(rest), errors.Join(ErrMalformedField, ErrTruncatedInput))
	}
	name := rest[:nameLen]
	rest = rest[nameLen:]

	if len(rest) < ageSize {
		return Record{}, fmt.Errorf("%w: %d bytes left, need %d for the age", ErrTruncatedInput, len(rest), ageSize)
	}
	if len(rest) > ageSize {
		return Record{}, fmt.Errorf("%w: %d trailing bytes after the age field", ErrMalformedField, len(rest)-ageSize)
	}
	age := int32(binary.BigEndian.Uint32(rest[:ageSize]))

	return Record{Name: string(name), Age: age}, nil
}

// PeekSize returns the total encoded size of the record whose fixed
// header is in header. It validates the magic and version so log readers
// detect corruption before trusting the length prefix. header must be at
// least HeaderSize bytes.
func PeekSize(header []byte) (int, error) {
	if len(header) < HeaderSize {
		return 0, fmt.Errorf("%w: %d bytes, need %d for the record header", ErrTruncatedInput, len(header), HeaderSize)
	}
	if !bytes.Equal(header[0:4], magic[:]) {
		return 0, fmt.Errorf("%w: got %x, want %x", ErrUnknownFormat, header[0:4], magic)
	}
	version := binary.BigEndian.Uint16(header[4:6])
	if version == 0 {
		return 0, fmt.Errorf("%w: schema version 0", ErrMalformedField)
	}
	if version > MaxVersion {
		return 0, fmt.Errorf("%w: version %d, max supported is %d", ErrUnsupportedVersion, version, MaxVersion)
	}
	nameLen := int(binary.BigEndian.Uint16(header[6:8]))
	return HeaderSize + nameLen + ageSize, nil
}
