package geom

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewSegment_Normalizes(t *testing.T) {
	s := NewSegment(Vec(10, 0), Vec(0, 5))
	if s.P0 != Vec(0, 5) || s.P1 != Vec(10, 0) {
		t.Errorf("expected P0.X <= P1.X, got %v %v", s.P0, s.P1)
	}

	d := NewDirectedSegment(Vec(10, 0), Vec(0, 5))
	if d.First != Vec(10, 0) || d.Second != Vec(0, 5) {
		t.Error("directed segment must keep construction order")
	}
	if d.P0 != Vec(0, 5) {
		t.Error("directed segment must still be normalized")
	}
}

func TestSegment_Coefficients(t *testing.T) {
	a, b := NewSegment(Vec(0, 1), Vec(2, 5)).Coefficients()
	if a != 2 || b != 1 {
		t.Errorf("got a=%v b=%v, want 2, 1", a, b)
	}

	a, b = NewSegment(Vec(3, 0), Vec(3, 9)).Coefficients()
	if !math.IsInf(a, 1) {
		t.Errorf("vertical slope = %v, want +Inf", a)
	}
	if b != 3 {
		t.Errorf("vertical intercept = %v, want line x 3", b)
	}
}

func TestSegment_IntersectionPoint(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment
		want Vector
		ok   bool
	}{
		{
			name: "crossing diagonals",
			a:    NewSegment(Vec(0, 0), Vec(10, 10)),
			b:    NewSegment(Vec(0, 10), Vec(10, 0)),
			want: Vec(5, 5),
			ok:   true,
		},
		{
			name: "lines cross outside x overlap",
			a:    NewSegment(Vec(0, 0), Vec(1, 1)),
			b:    NewSegment(Vec(4, 6), Vec(6, 4)),
			ok:   false,
		},
		{
			name: "parallel",
			a:    NewSegment(Vec(0, 0), Vec(10, 10)),
			b:    NewSegment(Vec(0, 1), Vec(10, 11)),
			ok:   false,
		},
		{
			name: "collinear overlap is not an intersection",
			a:    NewSegment(Vec(0, 0), Vec(10, 10)),
			b:    NewSegment(Vec(5, 5), Vec(15, 15)),
			ok:   false,
		},
		{
			name: "two verticals",
			a:    NewSegment(Vec(1, 0), Vec(1, 10)),
			b:    NewSegment(Vec(1, 5), Vec(1, 20)),
			ok:   false,
		},
		{
			name: "vertical crosses horizontal",
			a:    NewSegment(Vec(4, -5), Vec(4, 5)),
			b:    NewSegment(Vec(0, 2), Vec(10, 2)),
			want: Vec(4, 2),
			ok:   true,
		},
		{
			name: "vertical misses in y",
			a:    NewSegment(Vec(4, 5), Vec(4, 9)),
			b:    NewSegment(Vec(0, 2), Vec(10, 2)),
			ok:   false,
		},
		{
			name: "steep segment ending before the line",
			a:    NewSegment(Vec(400, 300), Vec(400.00000000000006, 600)),
			b:    NewSegment(Vec(0, 100), Vec(800, 100)),
			ok:   false,
		},
		{
			name: "touching at endpoint",
			a:    NewSegment(Vec(0, 0), Vec(5, 5)),
			b:    NewSegment(Vec(5, 5), Vec(10, 0)),
			want: Vec(5, 5),
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.IntersectionPoint(tt.b)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v (point %v)", ok, tt.ok, got)
			}
			if ok && !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("point = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegment_IntersectionSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	point := func() Vector {
		return Vec(rng.Float64()*500, rng.Float64()*500)
	}

	hits := 0
	for i := 0; i < 5000; i++ {
		a := NewSegment(point(), point())
		b := NewSegment(point(), point())
		if i%50 == 0 {
			// exercise the vertical branch too
			x := rng.Float64() * 500
			a = NewSegment(Vec(x, rng.Float64()*500), Vec(x, rng.Float64()*500))
		}

		p1, ok1 := a.IntersectionPoint(b)
		p2, ok2 := b.IntersectionPoint(a)
		if ok1 != ok2 || p1 != p2 {
			t.Fatalf("asymmetric: %v/%v vs %v/%v for %v %v", p1, ok1, p2, ok2, a, b)
		}
		if ok1 {
			hits++
		}
	}
	if hits == 0 {
		t.Error("random segments never intersected; test is vacuous")
	}
}

func TestSegment_Vectors(t *testing.T) {
	s := NewSegment(Vec(0, 100), Vec(100, 0))

	n := s.NormalVector()
	want := Vec(1, 1).Unit()
	if !n.ApproxEqual(want, eps) {
		t.Errorf("NormalVector = %v, want %v", n, want)
	}
	if math.Abs(n.Dot(s.ColinearVector())) > eps {
		t.Error("normal must be orthogonal to the segment")
	}

	d := NewDirectedSegment(Vec(100, 0), Vec(0, 100))
	if got := d.ColinearVector(); !got.ApproxEqual(Vec(-1, 1).Unit(), eps) {
		t.Errorf("directed ColinearVector = %v", got)
	}
	if got := d.Segment.ColinearVector(); !got.ApproxEqual(Vec(1, -1).Unit(), eps) {
		t.Errorf("undirected ColinearVector = %v", got)
	}
}

func TestSegment_IsDegenerate(t *testing.T) {
	if !NewSegment(Vec(1, 1), Vec(1, 1)).IsDegenerate() {
		t.Error("coincident endpoints must be degenerate")
	}
	if NewSegment(Vec(1, 1), Vec(1, 2)).IsDegenerate() {
		t.Error("vertical segment is not degenerate")
	}
}
