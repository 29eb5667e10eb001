package catalog

import (
	"strconv"

	"github.com/workwithprnv-stack/survey/internal/models"
)

var agreement = []string{"Strongly agree", "Agree", "Neutral", "Disagree", "Strongly disagree"}

// Default returns the built-in campus IT services survey.
func Default() Catalog {
	return Catalog{
		{
			ID:      "q1",
			Prompt:  "What best describes you?",
			Kind:    models.KindChoice,
			Options: []string{"Professor", "Student", "Other"},
		},
		{
			ID:     "q2",
			Prompt: "How often do you use Moodle in a typical week?",
			Kind:   models.KindChoice,
			Options: []string{
				"Less than once a week",
				"1–2 times a week",
				"3–4 times a week",
				"Almost every day",
				"Multiple times daily",
			},
		},
		{
			ID:     "q3",
			Prompt: "Which option best describes your internet usage on campus?",
			Kind:   models.KindChoice,
			Options: []string{
				"Rely entirely on campus Wi-Fi",
				"Mostly campus Wi-Fi, sometimes mobile data",
				"Mobile data more than campus Wi-Fi",
				"Almost entirely mobile data",
			},
		},
		{
			ID:      "q4",
			Prompt:  "How would you rate the speed and reliability of campus Wi-Fi?",
			Kind:    models.KindScale,
			Options: scale(1, 5),
		},
		{
			ID:      "q5",
			Prompt:  "Moodle works reliably for critical academic tasks.",
			Kind:    models.KindChoice,
			Options: append([]string(nil), agreement...),
		},
		{
			ID:      "q6",
			Prompt:  "How easy is it to navigate and use Moodle?",
			Kind:    models.KindChoice,
			Options: []string{"Very easy", "Easy", "Neutral", "Difficult", "Very difficult"},
		},
		{
			ID:     "q7",
			Prompt: "How easy was it to get your issue resolved through IT support?",
			Kind:   models.KindChoice,
			Options: []string{
				"Very easy",
				"Easy",
				"Neutral",
				"Difficult",
				"Very difficult",
				"I have never contacted IT support",
			},
			SkipIf: "I have never contacted IT support",
		},
		{
			ID:     "q8",
			Prompt: "How helpful was the FLAME IT team?",
			Kind:   models.KindChoice,
			Options: []string{
				"Extremely helpful",
				"Very helpful",
				"Moderately helpful",
				"Slightly helpful",
				"Not helpful at all",
			},
			Conditional: true,
		},
		{
			ID:      "q9",
			Prompt:  "Campus IT systems work reliably during exams and deadlines.",
			Kind:    models.KindChoice,
			Options: append([]string(nil), agreement...),
		},
		{
			ID:      "q10",
			Prompt:  "Overall, how satisfied are you with FLAME's IT services?",
			Kind:    models.KindScale,
			Options: scale(1, 5),
		},
		{
			ID:      "q11",
			Prompt:  "How likely are you to recommend FLAME IT services to another student?",
			Kind:    models.KindScale,
			Options: scale(0, 10),
		},
	}
}

func scale(from, to int) []string {
	values := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		values = append(values, strconv.Itoa(i))
	}
	return values
}
