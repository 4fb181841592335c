package store

import (
	"time"

	"github.com/Judith-olmand/persona/pkg/codec"
)

// LogWriterConfig holds configuration for the log writer
type LogWriterConfig struct {
	FilePath      string        // Path to the active data file
	FsyncInterval time.Duration // How often to fsync (0 = every write)
	BufferSize    int           // Write buffer size
}

// LogReaderConfig holds configuration for the log reader
type LogReaderConfig struct {
	FilePath    string // Path to the data file
	StartOffset int64  // Offset to start reading from
}

// PersonaLogConfig holds configuration for the persona log
type PersonaLogConfig struct {
	DataDir       string        // Directory for the data file
	FsyncInterval time.Duration // Fsync interval for durability
}

// RecoveryResult reports what Open found and repaired in the data file
type RecoveryResult struct {
	RecordsValidated int   // Records that decoded cleanly
	TailTruncated    bool  // Whether a corrupt tail was cut off
	BytesTruncated   int64 // Bytes removed from the tail
	FileSizeBefore   int64
	FileSizeAfter    int64
	RecoveryTime     time.Duration
}

// LogStats describes the current contents of the log
type LogStats struct {
	Records  int   `json:"records"`
	DataSize int64 `json:"data_size"`
}

// RecordIterator provides streaming access to records
type RecordIterator interface {
	Next() bool
	Record() codec.Record
	Err() error
	Close() error
}

// Errors
var (
	ErrNotFound   = &StoreError{"no records in log"}
	ErrCorruption = &StoreError{"data corruption detected"}
	ErrNotOpen    = &StoreError{"log is not open"}
)

// StoreError represents a persona log error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
