package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSubmissionAnswersKey(t *testing.T) {
	var submission Submission
	data := []byte(`{"sessionId":"abc","timestamp":"2026-01-02T03:04:05.000Z","answers":{"q1":"Student"}}`)
	if err := json.Unmarshal(data, &submission); err != nil {
		t.Fatalf("Failed to unmarshal submission: %v", err)
	}

	if submission.SessionID == nil || *submission.SessionID != "abc" {
		t.Errorf("SessionID mismatch: got %v", submission.SessionID)
	}
	if submission.Timestamp == nil {
		t.Fatal("Expected timestamp to be present")
	}
	if submission.Answers["q1"] != "Student" {
		t.Errorf("Answers mismatch: got %v", submission.Answers)
	}
}

func TestSubmissionLegacyResponsesKey(t *testing.T) {
	var submission Submission
	data := []byte(`{"sessionId":"abc","timestamp":"t","responses":{"q1":"Professor"}}`)
	if err := json.Unmarshal(data, &submission); err != nil {
		t.Fatalf("Failed to unmarshal submission: %v", err)
	}

	if submission.Answers["q1"] != "Professor" {
		t.Errorf("Expected legacy responses to populate answers, got %v", submission.Answers)
	}
}

func TestSubmissionAnswersWinOverResponses(t *testing.T) {
	var submission Submission
	data := []byte(`{"answers":{"q1":"new"},"responses":{"q1":"old"}}`)
	if err := json.Unmarshal(data, &submission); err != nil {
		t.Fatalf("Failed to unmarshal submission: %v", err)
	}

	if submission.Answers["q1"] != "new" {
		t.Errorf("Expected answers to take precedence, got %v", submission.Answers)
	}
}

func TestSubmissionMissingFields(t *testing.T) {
	var submission Submission
	if err := json.Unmarshal([]byte(`{"sessionId":"abc"}`), &submission); err != nil {
		t.Fatalf("Failed to unmarshal submission: %v", err)
	}

	if submission.Timestamp != nil {
		t.Errorf("Expected nil timestamp, got %v", *submission.Timestamp)
	}
	if submission.Answers != nil {
		t.Errorf("Expected nil answers, got %v", submission.Answers)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input     string
		want      Kind
		wantError bool
	}{
		{"choice", KindChoice, false},
		{"options", KindChoice, false},
		{" Scale ", KindScale, false},
		{"slider", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParseKind(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuestionTriggersSkip(t *testing.T) {
	question := Question{ID: "q7", Options: []string{"Easy", "Never"}, SkipIf: "Never"}

	if !question.TriggersSkip("Never") {
		t.Error("Expected skipIf value to trigger skip")
	}
	if question.TriggersSkip("Easy") {
		t.Error("Expected other value not to trigger skip")
	}
	if (Question{ID: "q1"}).TriggersSkip("") {
		t.Error("Expected a question without skipIf never to trigger skip")
	}
}

func TestAnswersClone(t *testing.T) {
	original := Answers{"q1": "Student"}
	clone := original.Clone()
	clone["q2"] = "Daily"

	if _, ok := original["q2"]; ok {
		t.Error("Expected clone to be independent of the original")
	}
	if Answers(nil).Clone() == nil {
		t.Error("Expected clone of nil answers to be an empty map")
	}
}

func TestTimestamp(t *testing.T) {
	moment := time.Date(2009, 2, 13, 23, 31, 30, 123_000_000, time.FixedZone("X", 3600))
	if got := Timestamp(moment); got != "2009-02-13T22:31:30.123Z" {
		t.Errorf("Timestamp() = %s", got)
	}
}
