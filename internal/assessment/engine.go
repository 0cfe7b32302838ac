package assessment

import (
	"errors"
	"strings"

	"github.com/dshills/innoscore/internal/questionnaire"
	"github.com/dshills/innoscore/internal/radar"
	"go.uber.org/zap"
)

// Engine runs assessments against a fixed catalog. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	catalog *questionnaire.Catalog
	modules []questionnaire.Module
	tiers   *TierTable
	layout  radar.Layout
	logger  *zap.Logger
}

type engineOptions struct {
	tiers          *TierTable
	size           float64
	marginFraction float64
	logger         *zap.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

// WithTierTable replaces the default thresholds.
func WithTierTable(t *TierTable) Option {
	return func(o *engineOptions) { o.tiers = t }
}

// WithChart sets the radar chart size and margin fraction.
func WithChart(size, marginFraction float64) Option {
	return func(o *engineOptions) {
		o.size = size
		o.marginFraction = marginFraction
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// NewEngine builds an engine over catalog. A nil catalog uses questionnaire.Default.
func NewEngine(catalog *questionnaire.Catalog, opts ...Option) (*Engine, error) {
	o := engineOptions{
		size:           radar.DefaultSize,
		marginFraction: radar.DefaultMarginFraction,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if catalog == nil {
		catalog = questionnaire.Default()
	}
	if o.tiers == nil {
		o.tiers = DefaultTierTable()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	layout, err := radar.NewLayout(o.size, o.marginFraction)
	if err != nil {
		return nil, err
	}
	return &Engine{
		catalog: catalog,
		modules: catalog.Modules(),
		tiers:   o.tiers,
		layout:  layout,
		logger:  o.logger,
	}, nil
}

// Catalog returns the questionnaire the engine scores against.
func (e *Engine) Catalog() *questionnaire.Catalog { return e.catalog }

// Modules returns the catalog modules for rendering the questionnaire.
func (e *Engine) Modules() []questionnaire.Module { return e.catalog.Modules() }

// Tiers returns the engine's tier table.
func (e *Engine) Tiers() *TierTable { return e.tiers }

// Layout returns the radar chart geometry.
func (e *Engine) Layout() radar.Layout { return e.layout }

// Progress reports how much of the questionnaire answers covers.
func (e *Engine) Progress(answers Answers) Completion {
	return Progress(e.modules, answers)
}

// Run scores answers for companyName, classifies the overall percentage and
// projects module percentages onto the radar layout. Input problems are
// returned as *ValidationError; an out-of-range percentage as *RangeError.
func (e *Engine) Run(companyName string, answers Answers) (*Result, error) {
	name := strings.TrimSpace(companyName)
	if name == "" {
		e.logger.Debug("assessment rejected", zap.String("field", "company_name"))
		return nil, &ValidationError{Field: "company_name", Message: "required"}
	}

	snapshot := answers.Clone()
	scores, err := Score(e.modules, snapshot)
	if err != nil {
		e.logger.Debug("assessment rejected", zap.String("company", name), zap.Error(err))
		return nil, err
	}

	tier, err := e.tiers.Classify(scores.OverallPercentage)
	if err != nil {
		var re *RangeError
		if errors.As(err, &re) {
			e.logger.Error("overall percentage out of range",
				zap.String("company", name),
				zap.Int("total_score", scores.TotalScore),
				zap.Int("max_total_score", scores.MaxTotalScore),
				zap.Float64("percentage", re.Value))
		}
		return nil, err
	}

	pcts := make([]float64, len(scores.Modules))
	for i, ms := range scores.Modules {
		pcts[i] = ms.Percentage
	}

	r := &Result{
		CompanyName:       name,
		TotalScore:        scores.TotalScore,
		MaxTotalScore:     scores.MaxTotalScore,
		OverallPercentage: scores.OverallPercentage,
		ModuleScores:      scores.Modules,
		Tier:              tier,
		RadarPoints:       e.layout.Project(pcts),
	}
	e.logger.Debug("assessment complete",
		zap.String("company", name),
		zap.Int("answered", len(snapshot)),
		zap.Float64("overall_percentage", r.OverallPercentage),
		zap.String("tier", string(tier.Level)))
	return r, nil
}
