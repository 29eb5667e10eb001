// Package sequencer picks which question a respondent sees next.
//
// Traversal only moves forward through catalog positions. The single
// exception to advancing by one is the skip rule: when the answer to a
// question equals its skipIf value and the question right after it is
// conditional, that conditional question is stepped over.
//
// Nothing here touches storage; callers persist answers themselves.
package sequencer

import (
	"errors"
	"fmt"

	"github.com/workwithprnv-stack/survey/internal/catalog"
	"github.com/workwithprnv-stack/survey/internal/models"
)

var (
	ErrFinished      = errors.New("survey already finished")
	ErrUnknownOption = errors.New("value is not an option of the current question")
)

// NextIndex returns the position after current, given the answer already
// recorded for catalog[current].
func NextIndex(c catalog.Catalog, answers models.Answers, current int) int {
	if current < 0 || current >= len(c) {
		return len(c)
	}
	next := current + 1
	if value, ok := answers[c[current].ID]; ok && c[current].TriggersSkip(value) {
		if next < len(c) && c[next].Conditional {
			next++
		}
	}
	return next
}

// ResumeIndex returns the position that follows the latest question, in
// catalog order, that has an answer. The skip rule of that latest answer
// applies, so a pending skip survives a restart. Earlier skip decisions are
// not re-evaluated.
func ResumeIndex(c catalog.Catalog, answers models.Answers) int {
	last := -1
	for i, q := range c {
		if answers[q.ID] != "" {
			last = i
		}
	}
	if last < 0 {
		return 0
	}
	return NextIndex(c, answers, last)
}

func Finished(c catalog.Catalog, index int) bool {
	return index >= len(c)
}

// Step describes one cursor movement.
type Step struct {
	From     int
	To       int
	Skipped  []string
	Finished bool
}

// Cursor is the per-session sequencing state. It is owned by the caller and
// is not safe for concurrent use.
type Cursor struct {
	Catalog catalog.Catalog
	Answers models.Answers
	Index   int
}

func NewCursor(c catalog.Catalog) *Cursor {
	return &Cursor{Catalog: c, Answers: models.Answers{}}
}

// Resume builds a cursor positioned after the latest stored answer.
func Resume(c catalog.Catalog, answers models.Answers) *Cursor {
	answers = answers.Clone()
	return &Cursor{Catalog: c, Answers: answers, Index: ResumeIndex(c, answers)}
}

// Current returns the question at the cursor, or false once finished.
func (c *Cursor) Current() (models.Question, bool) {
	if Finished(c.Catalog, c.Index) || c.Index < 0 {
		return models.Question{}, false
	}
	return c.Catalog[c.Index], true
}

func (c *Cursor) Finished() bool {
	return Finished(c.Catalog, c.Index)
}

// Advance records value for the current question and moves the cursor.
func (c *Cursor) Advance(value string) (Step, error) {
	question, ok := c.Current()
	if !ok {
		return Step{}, ErrFinished
	}
	if !question.HasOption(value) {
		return Step{}, fmt.Errorf("%w: %q for %s", ErrUnknownOption, value, question.ID)
	}
	if c.Answers == nil {
		c.Answers = models.Answers{}
	}
	c.Answers[question.ID] = value

	step := Step{From: c.Index, To: NextIndex(c.Catalog, c.Answers, c.Index)}
	for i := step.From + 1; i < step.To && i < len(c.Catalog); i++ {
		step.Skipped = append(step.Skipped, c.Catalog[i].ID)
	}
	c.Index = step.To
	step.Finished = c.Finished()
	return step, nil
}
