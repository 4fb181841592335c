package store

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Judith-olmand/persona/pkg/codec"
)

// DataFileName is the active persona data file inside the data directory.
const DataFileName = "persona.data"

// PersonaLog is the storage collaborator for persona records: an
// append-only file of encoded records. The codec stays pure; all file
// handling and locking lives here.
type PersonaLog struct {
	config   PersonaLogConfig
	writer   *LogWriter
	dataFile string
	count    int
	mutex    sync.Mutex
	isOpen   bool
}

// NewPersonaLog creates a new persona log instance
func NewPersonaLog(config PersonaLogConfig) (*PersonaLog, error) {
	if err := os.MkdirAll(config.DataDir, 0750); err != nil {
		return nil, err
	}

	return &PersonaLog{
		config:   config,
		dataFile: filepath.Join(config.DataDir, DataFileName),
	}, nil
}

// Open validates the data file, truncates a corrupt or partial tail, and
// prepares the log for appends
func (l *PersonaLog) Open() (*RecoveryResult, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.isOpen {
		return &RecoveryResult{}, nil
	}

	recovery, err := l.validateDataFile()
	if err != nil {
		return nil, err
	}
	l.count = recovery.RecordsValidated

	writer, err := NewLogWriter(LogWriterConfig{
		FilePath:      l.dataFile,
		FsyncInterval: l.config.FsyncInterval,
		BufferSize:    64 * 1024,
	})
	if err != nil {
		return nil, err
	}
	l.writer = writer

	l.isOpen = true
	return recovery, nil
}

// Append adds a record to the log and returns its starting offset
func (l *PersonaLog) Append(record codec.Record) (int64, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if !l.isOpen {
		return 0, ErrNotOpen
	}

	offset, err := l.writer.Append(record)
	if err != nil {
		return 0, err
	}
	l.count++

	return offset, nil
}

// List returns every record in the log in append order
func (l *PersonaLog) List() ([]codec.Record, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if !l.isOpen {
		return nil, ErrNotOpen
	}

	// Flush pending writes so the reader sees them
	if err := l.writer.Sync(); err != nil {
		return nil, err
	}

	reader, err := NewLogReader(LogReaderConfig{FilePath: l.dataFile})
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var records []codec.Record
	it := reader.Iterator()
	for it.Next() {
		records = append(records, it.Record())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Last returns the most recently appended record. It fails with
// ErrNotFound when the log is empty.
func (l *PersonaLog) Last() (codec.Record, error) {
	records, err := l.List()
	if err != nil {
		return codec.Record{}, err
	}
	if len(records) == 0 {
		return codec.Record{}, ErrNotFound
	}
	return records[len(records)-1], nil
}

// Count returns the number of records in the log
func (l *PersonaLog) Count() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.count
}

// Stats returns record count and data size
func (l *PersonaLog) Stats() *LogStats {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	stats := &LogStats{Records: l.count}
	if l.writer != nil {
		stats.DataSize = l.writer.Size()
	}
	return stats
}

// Path returns the data file path
func (l *PersonaLog) Path() string {
	return l.dataFile
}

// Close shuts down the log
func (l *PersonaLog) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if !l.isOpen {
		return nil
	}
	l.isOpen = false

	if l.writer != nil {
		return l.writer.Close()
	}
	return nil
}

// validateDataFile scans the data file and truncates everything after the
// last cleanly decodable record. A crash mid-append leaves a partial
// record at the tail; cutting it keeps the log readable.
func (l *PersonaLog) validateDataFile() (*RecoveryResult, error) {
	start := time.Now()

	info, err := os.Stat(l.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &RecoveryResult{RecoveryTime: time.Since(start)}, nil
		}
		return nil, err
	}
	sizeBefore := info.Size()

	reader, err := NewLogReader(LogReaderConfig{FilePath: l.dataFile})
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	validated := 0
	lastValidOffset := int64(0)
	corruptionFound := false

	for {
		_, err := reader.ReadNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			corruptionFound = true
			break
		}
		validated++
		lastValidOffset = reader.Offset()
	}

	result := &RecoveryResult{
		RecordsValidated: validated,
		FileSizeBefore:   sizeBefore,
		FileSizeAfter:    sizeBefore,
	}

	if corruptionFound && lastValidOffset < sizeBefore {
		if err := os.Truncate(l.dataFile, lastValidOffset); err != nil {
			return nil, err
		}
		result.TailTruncated = true
		result.BytesTruncated = sizeBefore - lastValidOffset
		result.FileSizeAfter = lastValidOffset
	}

	result.RecoveryTime = time.Since(start)
	return result, nil
}
