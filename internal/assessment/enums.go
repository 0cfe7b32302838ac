package assessment

import (
	"fmt"
	"strings"
)

// Level identifies a maturity tier.
type Level string

const (
	LevelCriticalNeed     Level = "CRITICAL_NEED"
	LevelDeveloping       Level = "DEVELOPING"
	LevelPotential        Level = "POTENTIAL"
	LevelSolidInnovator   Level = "SOLID_INNOVATOR"
	LevelHighlyInnovative Level = "HIGHLY_INNOVATIVE"
)

// Levels lists every level from highest to lowest.
var Levels = []Level{
	LevelHighlyInnovative,
	LevelSolidInnovator,
	LevelPotential,
	LevelDeveloping,
	LevelCriticalNeed,
}

func (l Level) Valid() bool {
	switch l {
	case LevelCriticalNeed, LevelDeveloping, LevelPotential, LevelSolidInnovator, LevelHighlyInnovative:
		return true
	}
	return false
}

// order returns a rank key (higher = more mature).
func (l Level) order() int {
	switch l {
	case LevelHighlyInnovative:
		return 4
	case LevelSolidInnovator:
		return 3
	case LevelPotential:
		return 2
	case LevelDeveloping:
		return 1
	case LevelCriticalNeed:
		return 0
	default:
		return -1
	}
}

// AtLeast reports whether l is as mature as other.
func (l Level) AtLeast(other Level) bool {
	return l.order() >= other.order()
}

// ParseLevel accepts a level code in any case, with '-' or ' ' in place of '_'.
func ParseLevel(s string) (Level, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	l := Level(norm)
	if !l.Valid() {
		return "", fmt.Errorf("unknown maturity level %q", s)
	}
	return l, nil
}
