// Package codec provides persona record serialization and deserialization.
//
// The codec package implements a versioned, self-describing binary format
// for persona records (name, age). It is the foundation every storage
// collaborator in this repository builds on: the append-only log in
// pkg/store and the pebble archive in pkg/storage both persist the bytes
// this package produces.
//
// # Record Format
//
// Records are serialized in a binary format with the following structure:
//
//	[Magic(4)][Version(2)][NameLen(2)][Name][Age(4)]
//
// Fields:
//   - Magic: the fixed tag "PRSN" identifying the schema family
//   - Version: 16-bit unsigned schema version (big-endian)
//   - NameLen: 16-bit unsigned name length in bytes (big-endian)
//   - Name: variable-length UTF-8 name data
//   - Age: 32-bit signed integer (big-endian)
//
// The total record size is: 8 bytes (header) + len(name) + 4.
//
// # Versioning
//
// Every record embeds its schema version. A decoder rejects versions
// newer than MaxVersion with ErrUnsupportedVersion rather than guessing
// at an unknown layout, which lets old readers fail cleanly against data
// written by future encoder generations.
//
// # Error Handling
//
// Decode classifies every failure with a sentinel error:
//   - ErrTruncatedInput: input ends inside a declared field
//   - ErrUnknownFormat: the format tag is not "PRSN"
//   - ErrUnsupportedVersion: schema version newer than MaxVersion
//   - ErrMalformedField: a length prefix or field contradicts the buffer
//
// Decoding is a single cursor pass that checks the remaining length
// before every read; malformed input produces an error, never a panic or
// an out-of-bounds access. The codec never logs or prints.
//
// # Thread Safety
//
// RecordCodec holds no state and performs no I/O; Encode and Decode are
// pure functions over their arguments and safe to call concurrently.
// Record is a plain value type.
package codec
