package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Judith-olmand/persona/pkg/codec"
)

func openLog(t *testing.T, dataDir string) *PersonaLog {
	t.Helper()

	log, err := NewPersonaLog(PersonaLogConfig{DataDir: dataDir})
	require.NoError(t, err)
	_, err = log.Open()
	require.NoError(t, err)

	return log
}

func TestPersonaLog_AppendAndList(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "persona_log_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	log := openLog(t, tmpDir)
	defer log.Close()

	records := []codec.Record{
		{Name: "Juan", Age: 30},
		{Name: "Ana", Age: 22},
	}
	for _, record := range records {
		_, err := log.Append(record)
		require.NoError(t, err)
	}

	got, err := log.List()
	require.NoError(t, err)
	assert.Equal(t, records, got)
	assert.Equal(t, 2, log.Count())
}

func TestPersonaLog_Last(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "persona_log_last_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	log := openLog(t, tmpDir)
	defer log.Close()

	_, err = log.Last()
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = log.Append(codec.Record{Name: "Juan", Age: 30})
	require.NoError(t, err)
	_, err = log.Append(codec.Record{Name: "Ana", Age: 22})
	require.NoError(t, err)

	last, err := log.Last()
	require.NoError(t, err)
	assert.Equal(t, codec.Record{Name: "Ana", Age: 22}, last)
}

func TestPersonaLog_NotOpen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "persona_log_not_open_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	log, err := NewPersonaLog(PersonaLogConfig{DataDir: tmpDir})
	require.NoError(t, err)

	_, err = log.Append(codec.Record{Name: "Juan", Age: 30})
	assert.ErrorIs(t, err, ErrNotOpen)

	_, err = log.List()
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestPersonaLog_PersistsAcrossReopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "persona_log_reopen_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	record := codec.Record{Name: "Juan", Age: 30}

	log := openLog(t, tmpDir)
	_, err = log.Append(record)
	require.NoError(t, err)
	require.NoError(t, log.Close())

	// The reader role of the original scenario: a separate process opens
	// the same file later and reads the record back
	reopened, err := NewPersonaLog(PersonaLogConfig{DataDir: tmpDir})
	require.NoError(t, err)
	recovery, err := reopened.Open()
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, 1, recovery.RecordsValidated)
	assert.False(t, recovery.TailTruncated)

	got, err := reopened.Last()
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestPersonaLog_RecoveryTruncatesPartialTail(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "persona_log_recovery_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	records := []codec.Record{
		{Name: "Juan", Age: 30},
		{Name: "Ana", Age: 22},
	}

	log := openLog(t, tmpDir)
	for _, record := range records {
		_, err := log.Append(record)
		require.NoError(t, err)
	}
	require.NoError(t, log.Close())

	// Simulate a crash mid-append: half a record at the tail
	dataFile := filepath.Join(tmpDir, DataFileName)
	f, err := os.OpenFile(dataFile, os.O_APPEND|os.O_WRONLY, 0600)
	require.NoError(t, err)
	_, err = f.Write([]byte{'P', 'R', 'S', 'N', 0x00})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened, err := NewPersonaLog(PersonaLogConfig{DataDir: tmpDir})
	require.NoError(t, err)
	recovery, err := reopened.Open()
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, 2, recovery.RecordsValidated)
	assert.True(t, recovery.TailTruncated)
	assert.Equal(t, int64(5), recovery.BytesTruncated)
	assert.Equal(t, recovery.FileSizeBefore-5, recovery.FileSizeAfter)

	got, err := reopened.List()
	require.NoError(t, err)
	assert.Equal(t, records, got)

	// The log accepts new appends after recovery
	_, err = reopened.Append(codec.Record{Name: "Pedro", Age: 61})
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.Count())
}

func TestPersonaLog_Stats(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "persona_log_stats_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	log := openLog(t, tmpDir)
	defer log.Close()

	record := codec.Record{Name: "Juan", Age: 30}
	_, err = log.Append(record)
	require.NoError(t, err)

	stats := log.Stats()
	assert.Equal(t, 1, stats.Records)
	assert.Equal(t, int64(codec.EncodedSize(record)), stats.DataSize)
}
