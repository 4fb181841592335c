// Package storage provides a keyed persona archive on top of pebble.
//
// The append-only log in pkg/store is the sequential collaborator from
// the original write-then-read scenario; the archive complements it with
// random access by id. Values are the codec's encoded record bytes, so
// both collaborators persist the same format.
package storage

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/Judith-olmand/persona/pkg/codec"
)

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("storage: record not found")

// Archive stores encoded persona records in a pebble DB keyed by KSUID.
type Archive struct {
	db    *pebble.DB
	codec *codec.RecordCodec
}

// Open opens (or creates) an archive at path.
func Open(path string) (*Archive, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Archive{db: db, codec: codec.NewRecordCodec()}, nil
}

// Create stores a record under a freshly generated id and returns the id.
func (a *Archive) Create(record codec.Record) (ksuid.KSUID, error) {
	data, err := a.codec.Encode(record)
	if err != nil {
		return ksuid.Nil, err
	}

	id := ksuid.New()
	if err := a.db.Set(id.Bytes(), data, pebble.Sync); err != nil {
		return ksuid.Nil, err
	}

	return id, nil
}

// Read returns the record stored under id.
func (a *Archive) Read(id ksuid.KSUID) (codec.Record, error) {
	data, closer, err := a.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return codec.Record{}, ErrNotFound
		}
		return codec.Record{}, err
	}
	defer closer.Close()

	record, err := a.codec.Decode(data)
	if err != nil {
		return codec.Record{}, fmt.Errorf("storage: archived record %s: %w", id, err)
	}

	return record, nil
}

// Update replaces the record stored under id. The id must already exist.
func (a *Archive) Update(id ksuid.KSUID, record codec.Record) error {
	_, closer, err := a.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	closer.Close()

	data, err := a.codec.Encode(record)
	if err != nil {
		return err
	}
	return a.db.Set(id.Bytes(), data, pebble.Sync)
}

// Delete removes the record stored under id. Deleting a missing id is not
// an error, matching pebble semantics.
func (a *Archive) Delete(id ksuid.KSUID) error {
	return a.db.Delete(id.Bytes(), pebble.Sync)
}

// Entry pairs an archive id with its decoded record.
type Entry struct {
	ID     ksuid.KSUID
	Record codec.Record
}

// List returns every archived record in id order. KSUIDs sort by creation
// time, so the order is effectively chronological.
func (a *Archive) List() ([]Entry, error) {
	iter, err := a.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return nil, fmt.Errorf("storage: bad archive key %x: %w", iter.Key(), err)
		}

		record, err := a.codec.Decode(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("storage: archived record %s: %w", id, err)
		}

		entries = append(entries, Entry{ID: id, Record: record})
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Close closes the underlying pebble DB.
func (a *Archive) Close() error {
	return a.db.Close()
}
