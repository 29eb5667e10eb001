package wizard

import (
	"go.uber.org/zap"

	"github.com/workwithprnv-stack/survey/internal/catalog"
	"github.com/workwithprnv-stack/survey/internal/models"
	"github.com/workwithprnv-stack/survey/internal/responses"
	"github.com/workwithprnv-stack/survey/internal/sequencer"
)

// Flow is one respondent's pass through the catalog. The cursor decides what
// comes next; the store keeps every answer on disk.
type Flow struct {
	cursor    *sequencer.Cursor
	store     *responses.Store
	logger    *zap.Logger
	submitted bool
}

// NewFlow resumes after the latest answer already held by store.
func NewFlow(c catalog.Catalog, store *responses.Store, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	cursor := sequencer.Resume(c, store.Snapshot().Answers)
	if cursor.Index > 0 {
		logger.Info("Resuming survey",
			zap.String("session", store.SessionID()),
			zap.Int("index", cursor.Index))
	}
	return &Flow{cursor: cursor, store: store, logger: logger}
}

func (f *Flow) SessionID() string {
	return f.store.SessionID()
}

func (f *Flow) Finished() bool {
	return f.cursor.Finished()
}

func (f *Flow) Current() (models.Question, bool) {
	return f.cursor.Current()
}

// Choose answers the current question. A failure to persist locally is logged
// and does not stop the survey.
func (f *Flow) Choose(value string) (sequencer.Step, error) {
	question, _ := f.cursor.Current()
	step, err := f.cursor.Advance(value)
	if err != nil {
		return step, err
	}
	if err := f.store.RecordAnswer(question.ID, value); err != nil {
		f.logger.Warn("Failed to save answer locally", zap.String("question", question.ID), zap.Error(err))
	}
	if len(step.Skipped) > 0 {
		f.logger.Debug("Skipped conditional questions", zap.Strings("questions", step.Skipped))
	}
	return step, nil
}

// TakeSubmission returns the response set to send the first time it is
// called on a finished flow, and false on every other call.
func (f *Flow) TakeSubmission() (models.ResponseSet, bool) {
	if !f.cursor.Finished() || f.submitted {
		return models.ResponseSet{}, false
	}
	f.submitted = true
	return f.store.Stamped(), true
}

func (f *Flow) Store() *responses.Store {
	return f.store
}

// State is the render input for the current position.
func (f *Flow) State() State {
	return State{
		Catalog:   f.cursor.Catalog,
		Index:     f.cursor.Index,
		SessionID: f.store.SessionID(),
	}
}
