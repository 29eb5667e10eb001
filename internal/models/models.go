package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"
)

// Kind is how a question's options are presented.
type Kind string

const (
	KindChoice Kind = "choice"
	KindScale  Kind = "scale"
)

// ParseKind accepts the catalog spellings of a kind. "options" is the older
// name for a choice question.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "choice", "options":
		return KindChoice, nil
	case "scale":
		return KindScale, nil
	default:
		return "", fmt.Errorf("unknown question kind %q", s)
	}
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

type Question struct {
	ID          string   `json:"id" yaml:"id"`
	Prompt      string   `json:"text" yaml:"text"`
	Kind        Kind     `json:"type" yaml:"type"`
	Options     []string `json:"options" yaml:"options"`
	SkipIf      string   `json:"skipIf,omitempty" yaml:"skipIf,omitempty"`
	Conditional bool     `json:"conditional,omitempty" yaml:"conditional,omitempty"`
}

// TriggersSkip reports whether answering value should skip the conditional
// question that follows this one.
func (q Question) TriggersSkip(value string) bool {
	return q.SkipIf != "" && q.SkipIf == value
}

func (q Question) HasOption(value string) bool {
	for _, option := range q.Options {
		if option == value {
			return true
		}
	}
	return false
}

// Answers maps question id to the selected option.
type Answers map[string]string

func (a Answers) Clone() Answers {
	if a == nil {
		return Answers{}
	}
	return maps.Clone(a)
}

// ResponseSet is one respondent's answers, keyed by a client-generated session id.
type ResponseSet struct {
	SessionID string  `json:"sessionId"`
	Timestamp string  `json:"timestamp"`
	Answers   Answers `json:"answers"`
}

// Timestamp formats t the way response sets and collections are stamped.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Submission is the POST /submit body as received. Nil fields were absent.
type Submission struct {
	SessionID *string `json:"sessionId"`
	Timestamp *string `json:"timestamp"`
	Answers   Answers `json:"answers"`
}

// UnmarshalJSON accepts "responses" as an alias for "answers", which is what
// earlier clients sent.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var raw struct {
		SessionID *string `json:"sessionId"`
		Timestamp *string `json:"timestamp"`
		Answers   Answers `json:"answers"`
		Responses Answers `json:"responses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.SessionID = raw.SessionID
	s.Timestamp = raw.Timestamp
	s.Answers = raw.Answers
	if s.Answers == nil {
		s.Answers = raw.Responses
	}
	return nil
}

// Collection is the server's durable state: one record per session id.
type Collection struct {
	Records     []ResponseSet `json:"records"`
	LastUpdated string        `json:"lastUpdated"`
}

type SubmitReply struct {
	Accepted  bool   `json:"accepted"`
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}
