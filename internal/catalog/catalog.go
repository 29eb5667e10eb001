// Package catalog defines the ordered question list a survey walks through.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/workwithprnv-stack/survey/internal/models"
)

// Catalog is an ordered question list. Order is traversal order.
type Catalog []models.Question

type file struct {
	Questions Catalog `yaml:"questions"`
}

// Load reads and validates a catalog from a YAML file of the form
// {questions: [...]}.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := f.Questions.Validate(); err != nil {
		return nil, err
	}
	return f.Questions, nil
}

// Index returns the position of the question with the given id, or -1.
func (c Catalog) Index(id string) int {
	for i, q := range c {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// Validate checks the authoring rules the sequencer relies on. A question with
// skipIf must be immediately followed by the one conditional question it
// controls, and every conditional question must be preceded by such a question.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog has no questions")
	}
	seen := make(map[string]bool, len(c))
	for i, q := range c {
		if q.ID == "" {
			return fmt.Errorf("question at position %d has no id", i)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true

		if q.Prompt == "" {
			return fmt.Errorf("question %s has no text", q.ID)
		}
		if q.Kind != models.KindChoice && q.Kind != models.KindScale {
			return fmt.Errorf("question %s has invalid type %q", q.ID, q.Kind)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s has no options", q.ID)
		}
		if q.SkipIf != "" {
			if !q.HasOption(q.SkipIf) {
				return fmt.Errorf("question %s: skipIf %q is not one of its options", q.ID, q.SkipIf)
			}
			if i+1 >= len(c) || !c[i+1].Conditional {
				return fmt.Errorf("question %s: skipIf must be followed by a conditional question", q.ID)
			}
		}
		if q.Conditional && (i == 0 || c[i-1].SkipIf == "") {
			return fmt.Errorf("conditional question %s must follow a question with skipIf", q.ID)
		}
	}
	return nil
}
