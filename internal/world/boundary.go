package world

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/raysim/internal/geom"
)

// Boundary decides what happens to a particle that leaves the rectangle.
type Boundary int

const (
	// BoundaryRemove drops particles outside [0, w] x [0, h]. Points on
	// the edges are inside.
	BoundaryRemove Boundary = iota
	// BoundaryWrap maps positions back into the rectangle on a torus.
	BoundaryWrap
)

func (b Boundary) String() string {
	switch b {
	case BoundaryRemove:
		return "remove"
	case BoundaryWrap:
		return "wrap"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "remove":
		return BoundaryRemove, nil
	case "wrap", "torus":
		return BoundaryWrap, nil
	}
	return BoundaryRemove, fmt.Errorf("%w: %q", ErrUnknownBoundary, s)
}

func (b Boundary) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Boundary) UnmarshalText(text []byte) error {
	v, err := ParseBoundary(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func contains(r geom.Vector, w, h float64) bool {
	return r.X >= 0 && r.X <= w && r.Y >= 0 && r.Y <= h
}

func wrap(r geom.Vector, w, h float64) geom.Vector {
	return geom.Vec(wrapCoord(r.X, w), wrapCoord(r.Y, h))
}

// wrapCoord returns v modulo dim in [0, dim).
func wrapCoord(v, dim float64) float64 {
	v = math.Mod(v, dim)
	if v < 0 {
		v += dim
	}
	if v >= dim {
		v -= dim
	}
	return v
}
