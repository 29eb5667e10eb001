package database

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()

	// Create temporary directory for test database
	tmpDir, err := os.MkdirTemp("", "survey-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDatabase(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create test database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func TestNewDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if db == nil {
		t.Fatal("Expected non-nil database")
	}
	if db.db == nil {
		t.Fatal("Expected non-nil sql.DB")
	}
}

func TestConnectionPragmas(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	var journalMode string
	if err := db.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Failed to read journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected journal_mode wal, got %q", journalMode)
	}

	var busyTimeout int
	if err := db.db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
		t.Fatalf("Failed to read busy_timeout: %v", err)
	}
	if busyTimeout != 5000 {
		t.Errorf("Expected busy_timeout 5000, got %d", busyTimeout)
	}
}

func TestSettings(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if _, found, err := db.GetSetting("surveySessionId"); err != nil || found {
		t.Fatalf("Expected missing setting, got found=%v err=%v", found, err)
	}

	if err := db.PutSetting("surveySessionId", "first"); err != nil {
		t.Fatalf("Failed to put setting: %v", err)
	}
	if err := db.PutSetting("surveySessionId", "second"); err != nil {
		t.Fatalf("Failed to overwrite setting: %v", err)
	}

	value, found, err := db.GetSetting("surveySessionId")
	if err != nil || !found {
		t.Fatalf("Expected setting, got found=%v err=%v", found, err)
	}
	if value != "second" {
		t.Errorf("Expected overwritten value, got %s", value)
	}

	if err := db.DeleteSetting("surveySessionId"); err != nil {
		t.Fatalf("Failed to delete setting: %v", err)
	}
	if _, found, _ := db.GetSetting("surveySessionId"); found {
		t.Error("Expected setting to be gone after delete")
	}
}

func TestPutSettingEmptyKey(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if err := db.PutSetting("", "value"); err == nil {
		t.Fatal("Expected error for empty key, got nil")
	}
}

func TestValidateResponseSet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		name      string
		sessionID string
		data      []byte
		wantError bool
	}{
		{name: "valid", sessionID: "abc", data: []byte(`{"sessionId":"abc"}`), wantError: false},
		{name: "empty session id", sessionID: "", data: []byte(`{}`), wantError: true},
		{name: "invalid json", sessionID: "abc", data: []byte(`{"sessionId":`), wantError: true},
		{name: "empty payload", sessionID: "abc", data: nil, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.ValidateResponseSet(tt.sessionID, tt.data)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateResponseSet() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestSaveAndLoadResponseSet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	first := []byte(`{"sessionId":"abc","answers":{"q1":"Student"}}`)
	second := []byte(`{"sessionId":"abc","answers":{"q1":"Student","q2":"Almost every day"}}`)

	if err := db.SaveResponseSet("abc", first); err != nil {
		t.Fatalf("Failed to save response set: %v", err)
	}
	if err := db.SaveResponseSet("abc", second); err != nil {
		t.Fatalf("Failed to replace response set: %v", err)
	}

	data, found, err := db.LoadResponseSet("abc")
	if err != nil || !found {
		t.Fatalf("Expected stored response set, got found=%v err=%v", found, err)
	}
	if string(data) != string(second) {
		t.Errorf("Expected latest response set, got %s", data)
	}

	var count int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM response_sets").Scan(&count); err != nil {
		t.Fatalf("Failed to query count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 row per session, got %d", count)
	}
}

func TestSaveResponseSetInvalid(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if err := db.SaveResponseSet("abc", []byte("not json")); err == nil {
		t.Fatal("Expected error for invalid response set, got nil")
	}

	if _, found, _ := db.LoadResponseSet("abc"); found {
		t.Error("Expected nothing stored after rejected save")
	}
}

func TestLoadResponseSetMissing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	data, found, err := db.LoadResponseSet("nobody")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found || data != nil {
		t.Errorf("Expected no data, got found=%v data=%s", found, data)
	}
}

func TestDeleteResponseSet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if err := db.SaveResponseSet("abc", []byte(`{}`)); err != nil {
		t.Fatalf("Failed to save response set: %v", err)
	}
	if err := db.DeleteResponseSet("abc"); err != nil {
		t.Fatalf("Failed to delete response set: %v", err)
	}
	if _, found, _ := db.LoadResponseSet("abc"); found {
		t.Error("Expected response set to be deleted")
	}
}

func TestDatabaseClose(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.Close()
	if err != nil {
		t.Errorf("Failed to close database: %v", err)
	}
}
