// Package radar computes regular-polygon geometry for radar (spider) charts.
package radar

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultSize = 300.0
	// DefaultMarginFraction leaves a 40px margin on a 300px chart.
	DefaultMarginFraction = 40.0 / 300.0
	// DefaultLabelOffset is the distance beyond MaxRadius where axis labels are anchored.
	DefaultLabelOffset = 25.0
)

// RingLevels are the grid ring fractions of MaxRadius.
var RingLevels = []float64{0.2, 0.4, 0.6, 0.8, 1.0}

// Point is a coordinate in a size x size chart space with the origin top-left.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// InputError reports invalid chart parameters.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("radar: %s: %s", e.Field, e.Message)
}

// Layout is the resolved geometry of a chart.
type Layout struct {
	Size      float64
	Center    float64
	MaxRadius float64
}

// NewLayout validates size and marginFraction. The margin is marginFraction*size.
func NewLayout(size, marginFraction float64) (Layout, error) {
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return Layout{}, &InputError{Field: "size", Message: fmt.Sprintf("must be > 0, got %v", size)}
	}
	if math.IsNaN(marginFraction) || marginFraction < 0 || marginFraction >= 0.5 {
		return Layout{}, &InputError{Field: "margin_fraction", Message: fmt.Sprintf("must be in [0, 0.5), got %v", marginFraction)}
	}
	center := size / 2
	return Layout{
		Size:      size,
		Center:    center,
		MaxRadius: center - marginFraction*size,
	}, nil
}

// Angle returns the axis angle for vertex i of n; vertex 0 points up.
func Angle(i, n int) float64 {
	return 2*math.Pi*float64(i)/float64(n) - math.Pi/2
}

// Project places percentages as polygon vertices in the layout.
func Project(percentages []float64, size, marginFraction float64) ([]Point, error) {
	l, err := NewLayout(size, marginFraction)
	if err != nil {
		return nil, err
	}
	return l.Project(percentages), nil
}

// Project places percentages as polygon vertices. Percentages are used as given;
// callers are expected to pass values in [0,100].
func (l Layout) Project(percentages []float64) []Point {
	n := len(percentages)
	points := make([]Point, n)
	for i, pct := range percentages {
		points[i] = l.polar(Angle(i, n), pct/100*l.MaxRadius)
	}
	return points
}

// Axes returns the outer endpoint of each of n axes.
func (l Layout) Axes(n int) []Point {
	return l.ring(n, l.MaxRadius)
}

// Labels returns label anchors for n axes, offset beyond MaxRadius.
func (l Layout) Labels(n int, offset float64) []Point {
	return l.ring(n, l.MaxRadius+offset)
}

// Rings returns the grid ring radii.
func (l Layout) Rings() []float64 {
	out := make([]float64, len(RingLevels))
	for i, lvl := range RingLevels {
		out[i] = l.MaxRadius * lvl
	}
	return out
}

func (l Layout) ring(n int, r float64) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = l.polar(Angle(i, n), r)
	}
	return points
}

func (l Layout) polar(theta, r float64) Point {
	return Point{
		X: l.Center + r*math.Cos(theta),
		Y: l.Center + r*math.Sin(theta),
	}
}

// Path renders points as a closed SVG path. Empty input yields "".
func Path(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%s,%s", FormatCoord(p.X), FormatCoord(p.Y))
	}
	return "M " + strings.Join(parts, " L ") + " Z"
}

// FormatCoord formats a coordinate with at most two decimals.
func FormatCoord(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
