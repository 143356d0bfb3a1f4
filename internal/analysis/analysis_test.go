package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func sine(n int, freq, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}
	return out
}

func TestNextPow2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {200, 256}, {256, 256},
	}
	for _, tt := range tests {
		if got := nextPow2(tt.in); got != tt.want {
			t.Errorf("nextPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPowerSpectrum(t *testing.T) {
	if PowerSpectrum(nil) != nil {
		t.Error("empty input must give nil")
	}

	ps := PowerSpectrum([]float64{1, 1, 1, 1})
	if len(ps) != 2 {
		t.Fatalf("len = %d, want 2", len(ps))
	}
	if math.Abs(ps[0]-4) > 1e-9 || math.Abs(ps[1]) > 1e-9 {
		t.Errorf("constant spectrum = %v, want [4 0]", ps)
	}

	if got := len(PowerSpectrum(make([]float64, 5))); got != 4 {
		t.Errorf("5 samples pad to 8, half is 4; got %d", got)
	}
}

func TestDominantFrequency(t *testing.T) {
	const dt = 1.0 / 64

	tests := []struct {
		name string
		n    int
		freq float64
	}{
		{"power of two", 256, 2},
		{"padded", 200, 2},
		{"faster", 512, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DominantFrequency(sine(tt.n, tt.freq, dt), dt)
			if err != nil {
				t.Fatal(err)
			}
			resolution := 1 / (float64(nextPow2(tt.n)) * dt)
			if math.Abs(got-tt.freq) > resolution {
				t.Errorf("got %v Hz, want %v ± %v", got, tt.freq, resolution)
			}
		})
	}
}

func TestDominantFrequency_Errors(t *testing.T) {
	if _, err := DominantFrequency([]float64{1, 2}, 0.1); !errors.Is(err, ErrShortSeries) {
		t.Errorf("expected ErrShortSeries, got %v", err)
	}
	if _, err := DominantFrequency(make([]float64, 8), 0); err == nil {
		t.Error("zero dt must fail")
	}
}

func TestPhasePortrait(t *testing.T) {
	var xs, vs []float64
	for i := 0; i < 200; i++ {
		a := 2 * math.Pi * float64(i) / 200
		xs = append(xs, math.Cos(a))
		vs = append(vs, -math.Sin(a))
	}

	p := NewPhasePortrait(xs, vs[:150])
	if len(p.Points) != 150 {
		t.Fatalf("points = %d, want the shorter length", len(p.Points))
	}

	art := p.ASCII(40, 20)
	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("lines = %d", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 40 {
			t.Fatalf("line width = %d", n)
		}
	}
	if !strings.Contains(art, "•") || !strings.Contains(art, "│") || !strings.Contains(art, "─") {
		t.Error("portrait must show points and both axes")
	}

	if (&PhasePortrait{}).ASCII(10, 10) != "" {
		t.Error("empty portrait must render nothing")
	}
}

func TestPoincareSection(t *testing.T) {
	cross := []float64{-1, 1, -1, 1}
	xs := []float64{0, 10, 20, 30}
	ys := []float64{0, 2, 4, 6}

	s := PoincareSection(cross, xs, ys, 0)
	if len(s.Points) != 2 {
		t.Fatalf("crossings = %d, want 2", len(s.Points))
	}
	if s.Points[0].X != 5 || s.Points[0].Y != 1 {
		t.Errorf("first crossing = %v, want interpolated (5, 1)", s.Points[0])
	}
	if s.Points[1].X != 25 {
		t.Errorf("second crossing = %v", s.Points[1])
	}
}
