// Package intake decides whether a submitted response set may be stored.
package intake

import (
	"fmt"
	"strings"

	"github.com/workwithprnv-stack/survey/internal/models"
)

// ValidationError reports required submission fields that were absent.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Missing, ", ")
}

// QualityRejection reports a submission whose every answer is non-committal.
type QualityRejection struct {
	SessionID string
}

func (e *QualityRejection) Error() string {
	return `Please answer with more than just "Neutral" responses`
}

// nonCommittal answers carry no signal on their own.
var nonCommittal = map[string]bool{
	"neutral": true,
	"none":    true,
	"":        true,
}

func IsNonCommittal(value string) bool {
	return nonCommittal[strings.ToLower(strings.TrimSpace(value))]
}

// AllNonCommittal reports whether answers is non-empty and every value is
// non-committal. One substantive answer is enough to pass.
func AllNonCommittal(answers models.Answers) bool {
	if len(answers) == 0 {
		return false
	}
	for _, value := range answers {
		if !IsNonCommittal(value) {
			return false
		}
	}
	return true
}

// Check validates presence of the required fields and applies the quality
// gate, returning the response set to store.
func Check(submission models.Submission) (models.ResponseSet, error) {
	var missing []string
	if submission.SessionID == nil || *submission.SessionID == "" {
		missing = append(missing, "sessionId")
	}
	if submission.Timestamp == nil || *submission.Timestamp == "" {
		missing = append(missing, "timestamp")
	}
	if submission.Answers == nil {
		missing = append(missing, "answers")
	}
	if len(missing) > 0 {
		return models.ResponseSet{}, &ValidationError{Missing: missing}
	}

	set := models.ResponseSet{
		SessionID: *submission.SessionID,
		Timestamp: *submission.Timestamp,
		Answers:   submission.Answers,
	}
	if AllNonCommittal(set.Answers) {
		return models.ResponseSet{}, &QualityRejection{SessionID: set.SessionID}
	}
	return set, nil
}

// Describe is a short form of a session id for logs.
func Describe(sessionID string) string {
	if len(sessionID) > 6 {
		return fmt.Sprintf("%s...", sessionID[:6])
	}
	return sessionID
}
