package codec

import "errors"

// Decode errors. All decode failures wrap exactly one of these sentinels
// (the oversized-name-length case wraps two, see Decode), so callers can
// classify failures with errors.Is without parsing messages.
var (
	// ErrTruncatedInput means the input ended before a declared field was
	// fully readable.
	ErrTruncatedInput = errors.New("codec: truncated input")

	// ErrUnknownFormat means the leading format tag is not the persona
	// record magic.
	ErrUnknownFormat = errors.New("codec: unknown format tag")

	// ErrUnsupportedVersion means the embedded schema version is newer
	// than MaxVersion. Older decoders reject records written by newer
	// encoders instead of misreading them.
	ErrUnsupportedVersion = errors.New("codec: unsupported schema version")

	// ErrMalformedField means a field is inconsistent with the rest of the
	// record: a length prefix overrunning the buffer, a zero schema
	// version, or trailing bytes after the last field.
	ErrMalformedField = errors.New("codec: malformed field")
)

// ErrNameTooLong is returned by Encode when the name does not fit the
// 16-bit length prefix.
var ErrNameTooLong = errors.New("codec: name exceeds maximum encodable length")
