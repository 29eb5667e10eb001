package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workwithprnv-stack/survey/internal/catalog"
	"github.com/workwithprnv-stack/survey/internal/models"
)

const neverContacted = "I have never contacted IT support"

func TestNextIndex(t *testing.T) {
	c := catalog.Default()

	tests := []struct {
		name    string
		answers models.Answers
		current int
		want    int
	}{
		{name: "linear", answers: models.Answers{"q1": "Student"}, current: 0, want: 1},
		{name: "skipIf matched skips conditional", answers: models.Answers{"q7": neverContacted}, current: 6, want: 8},
		{name: "skipIf not matched", answers: models.Answers{"q7": "Easy"}, current: 6, want: 7},
		{name: "no answer recorded", answers: models.Answers{}, current: 6, want: 7},
		{name: "last question", answers: models.Answers{"q11": "9"}, current: 10, want: 11},
		{name: "out of range", answers: models.Answers{}, current: 42, want: 11},
		{name: "negative", answers: models.Answers{}, current: -1, want: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextIndex(c, tt.answers, tt.current))
		})
	}
}

func TestNextIndexNoSkipWhenFollowerNotConditional(t *testing.T) {
	c := catalog.Catalog{
		{ID: "a", Prompt: "a", Kind: models.KindChoice, Options: []string{"x", "y"}, SkipIf: "x"},
		{ID: "b", Prompt: "b", Kind: models.KindChoice, Options: []string{"x"}},
		{ID: "c", Prompt: "c", Kind: models.KindChoice, Options: []string{"x"}},
	}
	assert.Equal(t, 1, NextIndex(c, models.Answers{"a": "x"}, 0))
}

func TestResumeIndex(t *testing.T) {
	c := catalog.Default()

	tests := []struct {
		name    string
		answers models.Answers
		want    int
	}{
		{name: "no answers", answers: nil, want: 0},
		{name: "first answered", answers: models.Answers{"q1": "Student"}, want: 1},
		{name: "pending skip after skipIf answer", answers: models.Answers{"q6": "Easy", "q7": neverContacted}, want: 8},
		{name: "no skip after other answer", answers: models.Answers{"q6": "Easy", "q7": "Difficult"}, want: 7},
		{name: "gap across skipped conditional", answers: models.Answers{"q6": "Easy", "q7": neverContacted, "q9": "Agree"}, want: 9},
		{name: "out of order ids", answers: models.Answers{"q3": "x", "q1": "y"}, want: 3},
		{name: "empty value ignored", answers: models.Answers{"q1": "Student", "q2": ""}, want: 1},
		{name: "unknown ids ignored", answers: models.Answers{"zz": "x"}, want: 0},
		{name: "all answered", answers: allAnswered(c), want: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResumeIndex(c, tt.answers))
		})
	}
}

func TestResumeIndexNeverBeforeLatestAnswer(t *testing.T) {
	c := catalog.Default()
	for i := range c {
		for j := i; j < len(c); j++ {
			answers := models.Answers{c[i].ID: c[i].Options[0], c[j].ID: c[j].Options[0]}
			assert.GreaterOrEqual(t, ResumeIndex(c, answers), j+1)
		}
	}
}

func TestResumeMatchesLiveCursorAfterSkip(t *testing.T) {
	c := catalog.Default()
	live := NewCursor(c)
	for !live.Finished() {
		q, ok := live.Current()
		require.True(t, ok)
		value := q.Options[0]
		if q.SkipIf != "" {
			value = neverContacted
		}
		_, err := live.Advance(value)
		require.NoError(t, err)
		if q.SkipIf != "" {
			break
		}
	}

	resumed := Resume(c, live.Answers)
	assert.Equal(t, live.Index, resumed.Index)
	q, ok := resumed.Current()
	require.True(t, ok)
	assert.Equal(t, "q9", q.ID)
	assert.False(t, q.Conditional)
}

func TestCursorSkipsConditional(t *testing.T) {
	cursor := NewCursor(catalog.Default())
	cursor.Index = 6

	step, err := cursor.Advance(neverContacted)
	require.NoError(t, err)
	assert.Equal(t, 6, step.From)
	assert.Equal(t, 8, step.To)
	assert.Equal(t, []string{"q8"}, step.Skipped)
	assert.False(t, step.Finished)

	q, ok := cursor.Current()
	require.True(t, ok)
	assert.Equal(t, "q9", q.ID)
}

func TestCursorShowsConditional(t *testing.T) {
	cursor := NewCursor(catalog.Default())
	cursor.Index = 6

	step, err := cursor.Advance("Difficult")
	require.NoError(t, err)
	assert.Empty(t, step.Skipped)

	q, ok := cursor.Current()
	require.True(t, ok)
	assert.Equal(t, "q8", q.ID)
}

func TestCursorFullWalk(t *testing.T) {
	c := catalog.Default()

	for _, skip := range []bool{true, false} {
		cursor := NewCursor(c)
		presented := 0
		for !cursor.Finished() {
			q, ok := cursor.Current()
			require.True(t, ok)
			presented++
			value := q.Options[0]
			if q.SkipIf != "" && skip {
				value = q.SkipIf
			}
			_, err := cursor.Advance(value)
			require.NoError(t, err)
		}
		if skip {
			assert.Equal(t, len(c)-1, presented)
			assert.NotContains(t, cursor.Answers, "q8")
		} else {
			assert.Equal(t, len(c), presented)
			assert.Contains(t, cursor.Answers, "q8")
		}
	}
}

func TestCursorErrors(t *testing.T) {
	cursor := NewCursor(catalog.Default())

	_, err := cursor.Advance("Astronaut")
	require.ErrorIs(t, err, ErrUnknownOption)
	assert.Empty(t, cursor.Answers)
	assert.Equal(t, 0, cursor.Index)

	cursor.Index = len(cursor.Catalog)
	_, err = cursor.Advance("Student")
	require.ErrorIs(t, err, ErrFinished)
}

func TestResumeCopiesAnswers(t *testing.T) {
	stored := models.Answers{"q1": "Student", "q2": "Almost every day"}
	cursor := Resume(catalog.Default(), stored)
	assert.Equal(t, 2, cursor.Index)

	_, err := cursor.Advance("Almost entirely mobile data")
	require.NoError(t, err)
	assert.NotContains(t, stored, "q3")
}

func allAnswered(c catalog.Catalog) models.Answers {
	answers := models.Answers{}
	for _, q := range c {
		answers[q.ID] = q.Options[0]
	}
	return answers
}
