// Package questionnaire holds the immutable catalog of assessment modules and questions.
package questionnaire

import (
	"embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

const builtinCatalog = "builtin/innovation.yaml"

// Likert bounds for a single answer.
const (
	MinLikert = 1
	MaxLikert = 4
)

// Question is a single questionnaire item.
type Question struct {
	ID       string `yaml:"id" json:"id"`
	ModuleID string `yaml:"-" json:"module_id"`
	Text     string `yaml:"text" json:"text"`
	Category string `yaml:"category" json:"category,omitempty"`
}

// Module is a themed group of questions.
type Module struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Questions   []Question `yaml:"questions" json:"questions"`
}

// MaxScore is the highest score the module can reach.
func (m Module) MaxScore() int {
	return len(m.Questions) * MaxLikert
}

// Catalog is a validated, read-only set of modules in presentation order.
type Catalog struct {
	Name    string
	Version int

	modules   []Module
	questions map[string]Question
	moduleIdx map[string]int
}

type catalogFile struct {
	Name    string   `yaml:"name"`
	Version int      `yaml:"version"`
	Modules []Module `yaml:"modules"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the compiled-in innovation capability catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		data, err := builtinFS.ReadFile(builtinCatalog)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = Parse(data)
	})
	if defaultErr != nil {
		// The embedded catalog is part of the binary; failing here is a build defect.
		panic(fmt.Sprintf("questionnaire.Default: %v", defaultErr))
	}
	return defaultCatalog
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("questionnaire.Load: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("questionnaire.Load: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("questionnaire.Parse: %w", err)
	}
	return New(f.Name, f.Version, f.Modules)
}

// New validates modules and builds a catalog from them. The modules are copied.
func New(name string, version int, modules []Module) (*Catalog, error) {
	if len(modules) == 0 {
		return nil, fmt.Errorf("questionnaire.Parse: catalog has no modules")
	}
	c := &Catalog{
		Name:      name,
		Version:   version,
		modules:   make([]Module, 0, len(modules)),
		questions: make(map[string]Question),
		moduleIdx: make(map[string]int, len(modules)),
	}
	for i, m := range modules {
		if m.ID == "" {
			return nil, fmt.Errorf("questionnaire.Parse: modules[%d]: id required", i)
		}
		if _, dup := c.moduleIdx[m.ID]; dup {
			return nil, fmt.Errorf("questionnaire.Parse: duplicate module id %q", m.ID)
		}
		if len(m.Questions) == 0 {
			return nil, fmt.Errorf("questionnaire.Parse: module %q has no questions", m.ID)
		}
		qs := make([]Question, len(m.Questions))
		for j, q := range m.Questions {
			if q.ID == "" {
				return nil, fmt.Errorf("questionnaire.Parse: module %q questions[%d]: id required", m.ID, j)
			}
			if _, dup := c.questions[q.ID]; dup {
				return nil, fmt.Errorf("questionnaire.Parse: duplicate question id %q", q.ID)
			}
			q.ModuleID = m.ID
			qs[j] = q
			c.questions[q.ID] = q
		}
		m.Questions = qs
		c.moduleIdx[m.ID] = len(c.modules)
		c.modules = append(c.modules, m)
	}
	return c, nil
}

// Modules returns the modules in catalog order. The result is a copy.
func (c *Catalog) Modules() []Module {
	out := make([]Module, len(c.modules))
	for i, m := range c.modules {
		m.Questions = append([]Question(nil), m.Questions...)
		out[i] = m
	}
	return out
}

// Module looks up a module by id.
func (c *Catalog) Module(id string) (Module, bool) {
	i, ok := c.moduleIdx[id]
	if !ok {
		return Module{}, false
	}
	m := c.modules[i]
	m.Questions = append([]Question(nil), m.Questions...)
	return m, true
}

// Question looks up a question by id.
func (c *Catalog) Question(id string) (Question, bool) {
	q, ok := c.questions[id]
	return q, ok
}

// TotalQuestions counts questions across all modules.
func (c *Catalog) TotalQuestions() int {
	return len(c.questions)
}

// MaxTotalScore is the sum of every module's MaxScore.
func (c *Catalog) MaxTotalScore() int {
	return c.TotalQuestions() * MaxLikert
}

// ScaleLabel describes a Likert score.
func ScaleLabel(score int) string {
	switch score {
	case 1:
		return "Does not apply"
	case 2:
		return "Partially applies"
	case 3:
		return "Considerably applies"
	case 4:
		return "Fully applies"
	default:
		return "No answer"
	}
}
