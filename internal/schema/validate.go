// Package schema validates assessment results and their exported JSON form.
package schema

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/dshills/innoscore/internal/assessment"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed result.schema.json
var resultSchema []byte

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Result for internal consistency: per-module bounds,
// totals matching module sums, percentages matching scores and one radar
// point per module.
func Validate(r *assessment.Result) []ValidationError {
	var errs []ValidationError

	if r.CompanyName == "" {
		errs = append(errs, ValidationError{"company_name", "required"})
	}
	if !r.Tier.Level.Valid() {
		errs = append(errs, ValidationError{"tier.code", fmt.Sprintf("invalid level: %q", r.Tier.Level)})
	}

	var sum, maxSum int
	for i, ms := range r.ModuleScores {
		prefix := fmt.Sprintf("module_scores[%d]", i)
		if ms.ModuleName == "" {
			errs = append(errs, ValidationError{prefix + ".module_name", "required"})
		}
		if ms.MaxScore <= 0 {
			errs = append(errs, ValidationError{prefix + ".max_score", "must be > 0"})
		}
		if ms.Score < 0 || ms.Score > ms.MaxScore {
			errs = append(errs, ValidationError{prefix + ".score", fmt.Sprintf("%d outside [0, %d]", ms.Score, ms.MaxScore)})
		}
		if ms.MaxScore > 0 && !approxEqual(ms.Percentage, 100*float64(ms.Score)/float64(ms.MaxScore)) {
			errs = append(errs, ValidationError{prefix + ".percentage", fmt.Sprintf("%v does not match score %d/%d", ms.Percentage, ms.Score, ms.MaxScore)})
		}
		sum += ms.Score
		maxSum += ms.MaxScore
	}

	if r.TotalScore != sum {
		errs = append(errs, ValidationError{"total_score", fmt.Sprintf("expected %d, got %d", sum, r.TotalScore)})
	}
	if r.MaxTotalScore != maxSum {
		errs = append(errs, ValidationError{"max_total_score", fmt.Sprintf("expected %d, got %d", maxSum, r.MaxTotalScore)})
	}
	if r.OverallPercentage < 0 || r.OverallPercentage > 100 || math.IsNaN(r.OverallPercentage) {
		errs = append(errs, ValidationError{"overall_percentage", fmt.Sprintf("%v outside [0, 100]", r.OverallPercentage)})
	} else if r.MaxTotalScore > 0 && !approxEqual(r.OverallPercentage, 100*float64(r.TotalScore)/float64(r.MaxTotalScore)) {
		errs = append(errs, ValidationError{"overall_percentage", fmt.Sprintf("%v does not match totals", r.OverallPercentage)})
	}

	if len(r.RadarPoints) != len(r.ModuleScores) {
		errs = append(errs, ValidationError{"radar_points", fmt.Sprintf("expected %d points, got %d", len(r.ModuleScores), len(r.RadarPoints))})
	}

	return errs
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

// ValidateJSON checks an exported result document against the result schema.
func ValidateJSON(data []byte) []ValidationError {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(resultSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return []ValidationError{{"(document)", err.Error()}}
	}
	if result.Valid() {
		return nil
	}
	errs := make([]ValidationError, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = ValidationError{desc.Field(), desc.Description()}
	}
	return errs
}
