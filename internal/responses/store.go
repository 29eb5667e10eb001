// Package responses holds a respondent's in-progress answers and keeps them
// in local durable storage so an interrupted survey can be resumed.
package responses

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/workwithprnv-stack/survey/internal/models"
)

const sessionIDSetting = "surveySessionId"

// Storage is the durable key/value backend. *database.Database satisfies it.
type Storage interface {
	GetSetting(key string) (string, bool, error)
	PutSetting(key, value string) error
	DeleteSetting(key string) error
	SaveResponseSet(sessionID string, data []byte) error
	LoadResponseSet(sessionID string) ([]byte, bool, error)
	DeleteResponseSet(sessionID string) error
}

// SessionID returns the cached session id, generating and caching one on first use.
func SessionID(storage Storage) (string, error) {
	id, found, err := storage.GetSetting(sessionIDSetting)
	if err != nil {
		return "", err
	}
	if found && id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := storage.PutSetting(sessionIDSetting, id); err != nil {
		return "", fmt.Errorf("failed to cache session id: %w", err)
	}
	return id, nil
}

// Forget drops the cached session id and its stored answers.
func Forget(storage Storage) error {
	id, found, err := storage.GetSetting(sessionIDSetting)
	if err != nil {
		return err
	}
	if found {
		if err := storage.DeleteResponseSet(id); err != nil {
			return err
		}
	}
	return storage.DeleteSetting(sessionIDSetting)
}

// LoadForSession returns the stored response set for a session. Missing or
// unreadable state yields an empty set for that session.
func LoadForSession(storage Storage, sessionID string, logger *zap.Logger) models.ResponseSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	empty := models.ResponseSet{SessionID: sessionID, Answers: models.Answers{}}

	data, found, err := storage.LoadResponseSet(sessionID)
	if err != nil {
		logger.Warn("Failed to read stored answers", zap.String("session", sessionID), zap.Error(err))
		return empty
	}
	if !found {
		return empty
	}

	var set models.ResponseSet
	if err := json.Unmarshal(data, &set); err != nil {
		logger.Warn("Ignoring corrupt stored answers", zap.String("session", sessionID), zap.Error(err))
		return empty
	}
	if set.SessionID != sessionID {
		logger.Warn("Ignoring stored answers for another session",
			zap.String("session", sessionID), zap.String("stored", set.SessionID))
		return empty
	}
	if set.Answers == nil {
		set.Answers = models.Answers{}
	}
	return set
}

// Store is the in-progress response set for one session.
type Store struct {
	storage Storage
	set     models.ResponseSet
	now     func() time.Time
}

// Open loads any prior answers for sessionID.
func Open(storage Storage, sessionID string, logger *zap.Logger) *Store {
	return &Store{
		storage: storage,
		set:     LoadForSession(storage, sessionID, logger),
		now:     time.Now,
	}
}

func (s *Store) SessionID() string {
	return s.set.SessionID
}

// RecordAnswer sets the answer for a question and persists the whole set.
// The in-memory answer is kept even when persisting fails.
func (s *Store) RecordAnswer(questionID, value string) error {
	if questionID == "" {
		return fmt.Errorf("question id cannot be empty")
	}
	s.set.Answers[questionID] = value
	s.set.Timestamp = models.Timestamp(s.now())

	data, err := json.Marshal(s.set)
	if err != nil {
		return fmt.Errorf("failed to encode response set: %w", err)
	}
	if err := s.storage.SaveResponseSet(s.set.SessionID, data); err != nil {
		return fmt.Errorf("failed to persist answer: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current response set.
func (s *Store) Snapshot() models.ResponseSet {
	snapshot := s.set
	snapshot.Answers = s.set.Answers.Clone()
	return snapshot
}

// Stamped returns a copy stamped with the current time, as sent on submission
// and export.
func (s *Store) Stamped() models.ResponseSet {
	snapshot := s.Snapshot()
	snapshot.Timestamp = models.Timestamp(s.now())
	return snapshot
}

// Export writes the current response set as indented JSON.
func (s *Store) Export(w io.Writer) error {
	return Encode(w, s.Stamped())
}

// Encode writes set as indented JSON, the respondent-facing export format.
func Encode(w io.Writer, set models.ResponseSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(set); err != nil {
		return fmt.Errorf("failed to export response set: %w", err)
	}
	return nil
}

// createFile opens export targets; tests replace it.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// WriteFile exports set to path. A failed close is reported, since that is
// where a short write on the final flush shows up.
func WriteFile(path string, set models.ResponseSet) (err error) {
	file, err := createFile(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close export file: %w", closeErr)
		}
	}()
	return Encode(file, set)
}

// ExportFileName is the suggested file name for an exported response set.
func ExportFileName(sessionID string) string {
	return fmt.Sprintf("survey_%s.json", ShortID(sessionID))
}

// ShortID is the first six characters of a session id, used in displays.
func ShortID(sessionID string) string {
	if len(sessionID) > 6 {
		return sessionID[:6]
	}
	return sessionID
}
