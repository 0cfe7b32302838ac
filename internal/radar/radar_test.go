package radar

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestNewLayout(t *testing.T) {
	l, err := NewLayout(300, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if l.Center != 150 || !near(l.MaxRadius, 120) {
		t.Errorf("layout = %+v", l)
	}

	d, err := NewLayout(DefaultSize, DefaultMarginFraction)
	if err != nil {
		t.Fatal(err)
	}
	if !near(d.MaxRadius, 110) {
		t.Errorf("default MaxRadius = %v, want 110", d.MaxRadius)
	}
}

func TestNewLayoutInvalid(t *testing.T) {
	tests := []struct {
		name   string
		size   float64
		margin float64
	}{
		{"zero size", 0, 0.1},
		{"negative size", -10, 0.1},
		{"nan size", math.NaN(), 0.1},
		{"inf size", math.Inf(1), 0.1},
		{"negative margin", 100, -0.01},
		{"half margin", 100, 0.5},
		{"nan margin", 100, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLayout(tt.size, tt.margin); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestProjectEmpty(t *testing.T) {
	pts, err := Project(nil, 300, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 0 {
		t.Errorf("expected no points, got %d", len(pts))
	}
	if Path(pts) != "" {
		t.Error("expected empty path")
	}
}

func TestProjectSingleVertexPointsUp(t *testing.T) {
	pts, err := Project([]float64{100}, 200, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 1 {
		t.Fatalf("got %d points", len(pts))
	}
	if !near(pts[0].X, 100) || !near(pts[0].Y, 0) {
		t.Errorf("vertex = %+v, want (100,0)", pts[0])
	}
}

func TestProjectFullPolygonOnMaxRadius(t *testing.T) {
	l, _ := NewLayout(300, 0.1)
	pts := l.Project([]float64{100, 100, 100, 100, 100})
	if len(pts) != 5 {
		t.Fatalf("got %d points", len(pts))
	}
	for i, p := range pts {
		d := math.Hypot(p.X-l.Center, p.Y-l.Center)
		if !near(d, l.MaxRadius) {
			t.Errorf("vertex %d at distance %v, want %v", i, d, l.MaxRadius)
		}
	}
}

func TestProjectZeroCollapsesToCenter(t *testing.T) {
	l, _ := NewLayout(300, 0.1)
	for i, p := range l.Project([]float64{0, 0, 0, 0, 0}) {
		if !near(p.X, l.Center) || !near(p.Y, l.Center) {
			t.Errorf("vertex %d = %+v, want center", i, p)
		}
	}
}

func TestProjectAngles(t *testing.T) {
	l, _ := NewLayout(100, 0)
	pts := l.Project([]float64{100, 100, 100, 100})
	want := []Point{{50, 0}, {100, 50}, {50, 100}, {0, 50}}
	for i := range want {
		if !near(pts[i].X, want[i].X) || !near(pts[i].Y, want[i].Y) {
			t.Errorf("vertex %d = %+v, want %+v", i, pts[i], want[i])
		}
	}
}

func TestAxesLabelsRings(t *testing.T) {
	l, _ := NewLayout(300, 0.1)
	axes := l.Axes(3)
	if len(axes) != 3 || !near(axes[0].X, 150) || !near(axes[0].Y, 30) {
		t.Errorf("axes = %+v", axes)
	}
	labels := l.Labels(3, DefaultLabelOffset)
	if !near(labels[0].Y, 150-120-DefaultLabelOffset) {
		t.Errorf("label[0] = %+v", labels[0])
	}
	rings := l.Rings()
	if len(rings) != 5 || !near(rings[4], 120) || !near(rings[0], 24) {
		t.Errorf("rings = %v", rings)
	}
}

func TestPath(t *testing.T) {
	got := Path([]Point{{50, 0}, {100, 50.5}, {0.126, 100}})
	want := "M 50,0 L 100,50.5 L 0.13,100 Z"
	if got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestFormatCoord(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		150:     "150",
		12.5:    "12.5",
		3.14159: "3.14",
		-0.001:  "0",
		-2.25:   "-2.25",
	}
	for in, want := range tests {
		if got := FormatCoord(in); got != want {
			t.Errorf("FormatCoord(%v) = %q, want %q", in, got, want)
		}
	}
}
