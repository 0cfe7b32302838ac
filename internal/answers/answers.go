// Package answers reads answer sheets from YAML or JSON files.
//
// A sheet names the company and gives answers either as a mapping
//
//	company_name: Acme
//	answers:
//	  m1_q1: 4
//	  m1_q2: 3
//
// or as a list of {question_id, score} entries, the shape the HTTP API accepts.
package answers

import (
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/dshills/innoscore/internal/assessment"
	"gopkg.in/yaml.v3"
)

// Sheet is a loaded answer sheet.
type Sheet struct {
	FilePath    string
	CompanyName string
	Answers     assessment.Answers
	Hash        string
}

// Entry is one answer in list form.
type Entry struct {
	QuestionID string `json:"question_id" yaml:"question_id"`
	Score      int    `json:"score" yaml:"score"`
}

type sheetFile struct {
	CompanyName string    `yaml:"company_name"`
	Answers     yaml.Node `yaml:"answers"`
}

// Load reads a sheet from path and computes its SHA-256 hash.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("answers.Load: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("answers.Load: %s: %w", path, err)
	}
	s.FilePath = path
	return s, nil
}

// Parse decodes a sheet. JSON input is accepted since it is valid YAML.
func Parse(data []byte) (*Sheet, error) {
	var f sheetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	a, err := decodeAnswers(&f.Answers)
	if err != nil {
		return nil, err
	}
	h := sha256.Sum256(data)
	return &Sheet{
		CompanyName: f.CompanyName,
		Answers:     a,
		Hash:        fmt.Sprintf("sha256:%x", h),
	}, nil
}

func decodeAnswers(n *yaml.Node) (assessment.Answers, error) {
	switch n.Kind {
	case 0:
		return assessment.Answers{}, nil
	case yaml.MappingNode:
		var m map[string]int
		if err := n.Decode(&m); err != nil {
			return nil, fmt.Errorf("answers: %w", err)
		}
		return assessment.Answers(m), nil
	case yaml.SequenceNode:
		var entries []Entry
		if err := n.Decode(&entries); err != nil {
			return nil, fmt.Errorf("answers: %w", err)
		}
		return FromEntries(entries)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return assessment.Answers{}, nil
		}
	}
	return nil, fmt.Errorf("answers: line %d: expected a mapping or a list", n.Line)
}

// FromEntries converts list-form answers. A question answered twice is a
// *assessment.ValidationError.
func FromEntries(entries []Entry) (assessment.Answers, error) {
	a := make(assessment.Answers, len(entries))
	for i, e := range entries {
		if e.QuestionID == "" {
			return nil, &assessment.ValidationError{
				Field:   fmt.Sprintf("answers[%d].question_id", i),
				Message: "required",
			}
		}
		if _, dup := a[e.QuestionID]; dup {
			return nil, &assessment.ValidationError{
				Field:   fmt.Sprintf("answers[%d].question_id", i),
				Message: fmt.Sprintf("duplicate answer for %q", e.QuestionID),
			}
		}
		a[e.QuestionID] = e.Score
	}
	return a, nil
}
