package assessment

import "github.com/dshills/innoscore/internal/questionnaire"

// ModuleProgress counts answered questions in one module.
type ModuleProgress struct {
	ModuleID   string `json:"module_id"`
	ModuleName string `json:"module_name"`
	Answered   int    `json:"answered"`
	Total      int    `json:"total"`
}

// Completion describes how much of the questionnaire has been answered.
type Completion struct {
	Modules  []ModuleProgress `json:"modules"`
	Answered int              `json:"answered"`
	Total    int              `json:"total"`
	missing  []string
}

// Progress counts answers per module. Answers to unknown questions are ignored.
func Progress(modules []questionnaire.Module, answers Answers) Completion {
	var c Completion
	for _, m := range modules {
		mp := ModuleProgress{ModuleID: m.ID, ModuleName: m.Name, Total: len(m.Questions)}
		for _, q := range m.Questions {
			if _, ok := answers[q.ID]; ok {
				mp.Answered++
			} else {
				c.missing = append(c.missing, q.ID)
			}
		}
		c.Modules = append(c.Modules, mp)
		c.Answered += mp.Answered
		c.Total += mp.Total
	}
	return c
}

// Complete reports whether every question has an answer.
func (c Completion) Complete() bool {
	return c.Answered == c.Total
}

// Percentage of questions answered.
func (c Completion) Percentage() float64 {
	return percentage(c.Answered, c.Total)
}

// Missing lists unanswered question ids in catalog order.
func (c Completion) Missing() []string {
	return append([]string(nil), c.missing...)
}
