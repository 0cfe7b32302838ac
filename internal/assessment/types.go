// Package assessment scores innovation capability questionnaires, classifies
// the result into a maturity tier and lays it out for a radar chart.
package assessment

import "github.com/dshills/innoscore/internal/radar"

// Result is the outcome of one assessment run. It is built once and never updated.
type Result struct {
	CompanyName       string        `json:"company_name"`
	TotalScore        int           `json:"total_score"`
	MaxTotalScore     int           `json:"max_total_score"`
	OverallPercentage float64       `json:"overall_percentage"`
	ModuleScores      []ModuleScore `json:"module_scores"`
	Tier              Tier          `json:"tier"`
	RadarPoints       []radar.Point `json:"radar_points"`
}

// ModuleScore is the aggregate for a single module.
type ModuleScore struct {
	ModuleID   string  `json:"module_id"`
	ModuleName string  `json:"module_name"`
	Score      int     `json:"score"`
	MaxScore   int     `json:"max_score"`
	Percentage float64 `json:"percentage"`
}

// ChartData is the series a chart renderer needs, in module order.
type ChartData struct {
	Modules           []string  `json:"modules"`
	Scores            []float64 `json:"scores"`
	CompanyName       string    `json:"company_name"`
	OverallPercentage float64   `json:"overall_percentage"`
}

// ChartData extracts the chart series from the result.
func (r *Result) ChartData() ChartData {
	cd := ChartData{
		Modules:           make([]string, len(r.ModuleScores)),
		Scores:            make([]float64, len(r.ModuleScores)),
		CompanyName:       r.CompanyName,
		OverallPercentage: r.OverallPercentage,
	}
	for i, ms := range r.ModuleScores {
		cd.Modules[i] = ms.ModuleName
		cd.Scores[i] = ms.Percentage
	}
	return cd
}
