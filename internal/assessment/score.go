package assessment

import (
	"fmt"
	"sort"

	"github.com/dshills/innoscore/internal/questionnaire"
)

// Answers maps a question id to its Likert score. Unanswered questions are absent.
type Answers map[string]int

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Scores is the aggregate of one scoring pass.
type Scores struct {
	Modules           []ModuleScore
	TotalScore        int
	MaxTotalScore     int
	OverallPercentage float64
}

// Score validates answers against modules and sums them per module, in module order.
// Missing answers count as 0. Unknown question ids and scores outside the
// Likert scale are a *ValidationError; values are never clamped.
func Score(modules []questionnaire.Module, answers Answers) (Scores, error) {
	if err := validateAnswers(modules, answers); err != nil {
		return Scores{}, err
	}

	s := Scores{Modules: make([]ModuleScore, 0, len(modules))}
	for _, m := range modules {
		ms := ModuleScore{
			ModuleID:   m.ID,
			ModuleName: m.Name,
			MaxScore:   m.MaxScore(),
		}
		for _, q := range m.Questions {
			ms.Score += answers[q.ID]
		}
		ms.Percentage = percentage(ms.Score, ms.MaxScore)
		s.Modules = append(s.Modules, ms)
		s.TotalScore += ms.Score
		s.MaxTotalScore += ms.MaxScore
	}
	s.OverallPercentage = percentage(s.TotalScore, s.MaxTotalScore)
	return s, nil
}

func validateAnswers(modules []questionnaire.Module, answers Answers) error {
	known := make(map[string]bool)
	for _, m := range modules {
		for _, q := range m.Questions {
			known[q.ID] = true
		}
	}
	// Sorted so the reported error does not depend on map iteration order.
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		field := "answers." + id
		if !known[id] {
			return &ValidationError{Field: field, Message: "unknown question"}
		}
		if v := answers[id]; v < questionnaire.MinLikert || v > questionnaire.MaxLikert {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("score %d outside [%d, %d]", v, questionnaire.MinLikert, questionnaire.MaxLikert),
			}
		}
	}
	return nil
}

// percentage returns 0 for a zero maximum.
func percentage(score, maxScore int) float64 {
	if maxScore == 0 {
		return 0
	}
	return 100 * float64(score) / float64(maxScore)
}
