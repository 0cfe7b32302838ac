package assessment

import (
	_ "embed"
	"fmt"
	"math"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tiers.yaml
var tiersYAML []byte

// Tier is a maturity classification with its fixed guidance.
// Name serializes as "level" to match the export document; Level is the stable code.
type Tier struct {
	Level           Level    `json:"code" yaml:"level"`
	Name            string   `json:"level" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
	Label           string   `json:"-" yaml:"label"`
}

func (t Tier) clone() Tier {
	t.Recommendations = append([]string(nil), t.Recommendations...)
	return t
}

// Threshold is an inclusive lower bound for a level.
type Threshold struct {
	Level      Level   `json:"level"`
	LowerBound float64 `json:"lower_bound"`
}

// DefaultThresholds returns the standard boundaries, highest first.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{LevelHighlyInnovative, 85},
		{LevelSolidInnovator, 70},
		{LevelPotential, 55},
		{LevelDeveloping, 40},
		{LevelCriticalNeed, 0},
	}
}

var (
	tierCopyOnce sync.Once
	tierCopy     map[Level]Tier
	tierCopyErr  error
)

func loadTierCopy() (map[Level]Tier, error) {
	tierCopyOnce.Do(func() {
		var doc struct {
			Tiers []Tier `yaml:"tiers"`
		}
		if err := yaml.Unmarshal(tiersYAML, &doc); err != nil {
			tierCopyErr = fmt.Errorf("assessment: parse tier copy: %w", err)
			return
		}
		m := make(map[Level]Tier, len(doc.Tiers))
		for _, t := range doc.Tiers {
			if !t.Level.Valid() {
				tierCopyErr = fmt.Errorf("assessment: tier copy: invalid level %q", t.Level)
				return
			}
			m[t.Level] = t
		}
		for _, l := range Levels {
			if _, ok := m[l]; !ok {
				tierCopyErr = fmt.Errorf("assessment: tier copy: missing level %s", l)
				return
			}
		}
		tierCopy = m
	})
	return tierCopy, tierCopyErr
}

// TierTable maps an overall percentage to a tier. Thresholds are evaluated
// top-down and the first lower bound not above the percentage wins.
type TierTable struct {
	thresholds []Threshold
	tiers      map[Level]Tier
}

// NewTierTable validates thresholds: each level exactly once, bounds within
// [0,100] and strictly descending, the last bound 0.
func NewTierTable(thresholds []Threshold) (*TierTable, error) {
	copyByLevel, err := loadTierCopy()
	if err != nil {
		return nil, err
	}
	if len(thresholds) != len(Levels) {
		return nil, fmt.Errorf("assessment.NewTierTable: want %d thresholds, got %d", len(Levels), len(thresholds))
	}
	seen := make(map[Level]bool, len(thresholds))
	for i, th := range thresholds {
		if !th.Level.Valid() {
			return nil, fmt.Errorf("assessment.NewTierTable: thresholds[%d]: invalid level %q", i, th.Level)
		}
		if seen[th.Level] {
			return nil, fmt.Errorf("assessment.NewTierTable: duplicate level %s", th.Level)
		}
		seen[th.Level] = true
		if math.IsNaN(th.LowerBound) || th.LowerBound < 0 || th.LowerBound > 100 {
			return nil, fmt.Errorf("assessment.NewTierTable: %s: bound %v outside [0, 100]", th.Level, th.LowerBound)
		}
		if i > 0 && th.LowerBound >= thresholds[i-1].LowerBound {
			return nil, fmt.Errorf("assessment.NewTierTable: %s: bound %v not below %v", th.Level, th.LowerBound, thresholds[i-1].LowerBound)
		}
	}
	if last := thresholds[len(thresholds)-1]; last.LowerBound != 0 {
		return nil, fmt.Errorf("assessment.NewTierTable: lowest bound must be 0, got %v", last.LowerBound)
	}
	return &TierTable{
		thresholds: append([]Threshold(nil), thresholds...),
		tiers:      copyByLevel,
	}, nil
}

var (
	defaultTableOnce sync.Once
	defaultTable     *TierTable
)

// DefaultTierTable returns the table built from DefaultThresholds.
func DefaultTierTable() *TierTable {
	defaultTableOnce.Do(func() {
		t, err := NewTierTable(DefaultThresholds())
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}

// Classify selects the tier for pct using the default table.
func Classify(pct float64) (Tier, error) {
	return DefaultTierTable().Classify(pct)
}

// Classify selects the tier for pct. pct must be within [0,100].
func (t *TierTable) Classify(pct float64) (Tier, error) {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return Tier{}, &RangeError{Value: pct}
	}
	for _, th := range t.thresholds {
		if pct >= th.LowerBound {
			return t.tiers[th.Level].clone(), nil
		}
	}
	// Unreachable: the last bound is 0.
	return Tier{}, &RangeError{Value: pct}
}

// Thresholds returns a copy of the table's bounds, highest first.
func (t *TierTable) Thresholds() []Threshold {
	return append([]Threshold(nil), t.thresholds...)
}

// Tier returns the copy for a level.
func (t *TierTable) Tier(l Level) (Tier, bool) {
	tier, ok := t.tiers[l]
	if !ok {
		return Tier{}, false
	}
	return tier.clone(), true
}

// ScoreLabel returns a one-word rating for a percentage, e.g. "Good".
// Percentages outside [0,100] are labeled "Invalid".
func (t *TierTable) ScoreLabel(pct float64) string {
	tier, err := t.Classify(pct)
	if err != nil {
		return "Invalid"
	}
	return tier.Label
}
