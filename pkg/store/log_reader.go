package store

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/Judith-olmand/persona/pkg/codec"
)

// LogReader provides sequential access to records in a persona data file
type LogReader struct {
	file   *os.File
	reader *bufio.Reader
	codec  *codec.RecordCodec
	offset int64
	config LogReaderConfig
}

// NewLogReader creates a new log reader for the specified file
func NewLogReader(config LogReaderConfig) (*LogReader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	if config.StartOffset > 0 {
		if _, err := file.Seek(config.StartOffset, 0); err != nil {
			file.Close()
			return nil, err
		}
	}

	return &LogReader{
		file:   file,
		reader: bufio.NewReader(file),
		codec:  codec.NewRecordCodec(),
		offset: config.StartOffset,
		config: config,
	}, nil
}

// ReadNext reads the next record from the current offset. It returns
// io.EOF at a clean end of file and ErrCorruption when the file ends
// inside a record or the bytes do not decode.
func (r *LogReader) ReadNext() (codec.Record, error) {
	header := make([]byte, codec.HeaderSize)
	n, err := io.ReadFull(r.reader, header)
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return codec.Record{}, io.EOF
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return codec.Record{}, ErrCorruption
		}
		return codec.Record{}, err
	}

	// The header carries the magic, version and name length; PeekSize
	// rejects garbage before the length prefix is trusted.
	total, err := codec.PeekSize(header)
	if err != nil {
		return codec.Record{}, ErrCorruption
	}

	buf := make([]byte, total)
	copy(buf, header)
	if _, err := io.ReadFull(r.reader, buf[codec.HeaderSize:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return codec.Record{}, ErrCorruption
		}
		return codec.Record{}, err
	}

	record, err := r.codec.Decode(buf)
	if err != nil {
		return codec.Record{}, ErrCorruption
	}

	r.offset += int64(total)
	return record, nil
}

// Seek sets the read offset
func (r *LogReader) Seek(offset int64) error {
	if _, err := r.file.Seek(offset, 0); err != nil {
		return err
	}

	r.reader = bufio.NewReader(r.file) // Recreate reader to clear buffer
	r.offset = offset
	return nil
}

// Offset returns the current read offset
func (r *LogReader) Offset() int64 {
	return r.offset
}

// Iterator returns a streaming iterator over the remaining records
func (r *LogReader) Iterator() RecordIterator {
	return &logRecordIterator{reader: r}
}

// Close closes the log reader
func (r *LogReader) Close() error {
	return r.file.Close()
}

// logRecordIterator implements RecordIterator for streaming access
type logRecordIterator struct {
	reader *LogReader
	record codec.Record
	err    error
}

func (it *logRecordIterator) Next() bool {
	it.record, it.err = it.reader.ReadNext()
	return it.err == nil
}

func (it *logRecordIterator) Record() codec.Record {
	return it.record
}

// Err returns the error that stopped iteration, or nil after a clean EOF.
func (it *logRecordIterator) Err() error {
	if errors.Is(it.err, io.EOF) {
		return nil
	}
	return it.err
}

func (it *logRecordIterator) Close() error {
	// The underlying reader is owned by the caller
	return nil
}
