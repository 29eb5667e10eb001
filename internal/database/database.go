package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // CGO-free SQLite
)

// Database is the client's local durable storage: a small settings table and
// the latest response set per session.
type Database struct {
	db *sql.DB
}

func NewDatabase(databasePath string) (*Database, error) {
	// WAL + busy timeout to avoid "database is locked"
	db, err := sql.Open("sqlite", databasePath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Database{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS settings(
	  key   TEXT PRIMARY KEY,
	  value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS response_sets(
	  session_id TEXT    PRIMARY KEY,
	  data_json  TEXT    NOT NULL,
	  updated_at INTEGER NOT NULL
	);
	`)
	if err != nil {
		return fmt.Errorf("failed to create database tables: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// GetSetting returns the value stored under key and whether it exists.
func (d *Database) GetSetting(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, true, nil
}

func (d *Database) PutSetting(key, value string) error {
	if key == "" {
		return fmt.Errorf("setting key cannot be empty")
	}
	_, err := d.db.Exec(`INSERT INTO settings(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

func (d *Database) DeleteSetting(key string) error {
	if _, err := d.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

func (d *Database) ValidateResponseSet(sessionID string, data []byte) error {
	if sessionID == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	if !json.Valid(data) {
		return fmt.Errorf("response set for %s is not valid JSON", sessionID)
	}
	return nil
}

// SaveResponseSet replaces the stored response set for a session.
func (d *Database) SaveResponseSet(sessionID string, data []byte) error {
	if err := d.ValidateResponseSet(sessionID, data); err != nil {
		return fmt.Errorf("invalid response set: %w", err)
	}
	_, err := d.db.Exec(`INSERT INTO response_sets(session_id, data_json, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET data_json = excluded.data_json, updated_at = excluded.updated_at`,
		sessionID, string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save response set: %w", err)
	}
	return nil
}

// LoadResponseSet returns the raw stored JSON for a session. The bytes are
// returned as stored; callers decide what to do with unreadable content.
func (d *Database) LoadResponseSet(sessionID string) ([]byte, bool, error) {
	var data string
	err := d.db.QueryRow(`SELECT data_json FROM response_sets WHERE session_id = ?`, sessionID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load response set: %w", err)
	}
	return []byte(data), true, nil
}

func (d *Database) DeleteResponseSet(sessionID string) error {
	if _, err := d.db.Exec(`DELETE FROM response_sets WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete response set: %w", err)
	}
	return nil
}
