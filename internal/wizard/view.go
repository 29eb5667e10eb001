package wizard

import (
	"github.com/workwithprnv-stack/survey/internal/catalog"
	"github.com/workwithprnv-stack/survey/internal/models"
	"github.com/workwithprnv-stack/survey/internal/responses"
)

// State is everything the screen depends on.
type State struct {
	Catalog   catalog.Catalog
	Index     int
	Highlight int
	SessionID string
	Status    string
}

// View describes one screen without drawing it.
type View struct {
	Finished   bool
	Step       int
	Total      int
	Percent    float64
	Prompt     string
	Kind       models.Kind
	Options    []string
	Highlight  int
	SessionTag string
	Status     string
}

const completionPrompt = "Thank you for completing the survey!"

func Render(s State) View {
	total := len(s.Catalog)
	v := View{
		Total:      total,
		SessionTag: responses.ShortID(s.SessionID),
		Status:     s.Status,
	}
	if s.Index >= total {
		v.Finished = true
		v.Step = total
		v.Percent = 1
		v.Prompt = completionPrompt
		return v
	}

	question := s.Catalog[s.Index]
	v.Step = s.Index + 1
	v.Percent = float64(s.Index) / float64(total)
	v.Prompt = question.Prompt
	v.Kind = question.Kind
	v.Options = question.Options
	v.Highlight = clamp(s.Highlight, 0, len(question.Options)-1)
	return v
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
