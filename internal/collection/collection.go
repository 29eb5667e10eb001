// Package collection keeps the server's submitted response sets in a single
// JSON file, one record per session id.
//
// Every write rewrites the whole file. The new content goes to a temporary
// file in the same directory which is synced and then renamed over the old
// one, so a reader sees either the previous collection or the new one. Writes
// are serialized by a mutex, which makes each read-modify-write cycle atomic
// within the process.
package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/workwithprnv-stack/survey/internal/models"
)

// PersistenceError wraps a failure to read or write the collection file.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s collection: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// UpsertResult reports whether a record was replaced and the record count after
// the write.
type UpsertResult struct {
	Replaced bool
	Total    int
}

type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// Open returns a store for path, creating an empty collection file if none
// exists.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		empty := models.Collection{Records: []models.ResponseSet{}, LastUpdated: models.Timestamp(s.now())}
		if err := s.write(empty); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, &PersistenceError{Op: "stat", Err: err}
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored collection as-is. A missing file is an empty
// collection.
func (s *Store) Load() (models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Upsert replaces the record with the same session id in place, or appends a
// new one, and refreshes lastUpdated.
func (s *Store) Upsert(set models.ResponseSet) (UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return UpsertResult{}, err
	}

	result := UpsertResult{}
	for i := range current.Records {
		if current.Records[i].SessionID == set.SessionID {
			current.Records[i] = set
			result.Replaced = true
			break
		}
	}
	if !result.Replaced {
		current.Records = append(current.Records, set)
	}
	current.LastUpdated = models.Timestamp(s.now())

	if err := s.write(current); err != nil {
		return UpsertResult{}, err
	}
	result.Total = len(current.Records)
	return result, nil
}

func (s *Store) read() (models.Collection, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Collection{Records: []models.ResponseSet{}}, nil
	}
	if err != nil {
		return models.Collection{}, &PersistenceError{Op: "read", Err: err}
	}

	var c models.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return models.Collection{}, &PersistenceError{Op: "parse", Err: err}
	}
	if c.Records == nil {
		c.Records = []models.ResponseSet{}
	}
	return c, nil
}

func (s *Store) write(c models.Collection) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}

	directory := filepath.Dir(s.path)
	file, err := os.CreateTemp(directory, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &PersistenceError{Op: "write", Err: err}
	}
	temporaryPath := file.Name()

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return &PersistenceError{Op: "write", Err: err}
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return &PersistenceError{Op: "sync", Err: err}
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return &PersistenceError{Op: "close", Err: err}
	}
	if err := os.Rename(temporaryPath, s.path); err != nil {
		os.Remove(temporaryPath)
		return &PersistenceError{Op: "rename", Err: err}
	}

	// Sync the parent directory so the rename survives a crash.
	if parentDirectory, err := os.Open(directory); err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}
	return nil
}
