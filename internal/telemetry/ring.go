package telemetry

// Ring is a fixed-capacity FIFO of float64 that drops its oldest value
// when full.
type Ring struct {
	data  []float64
	start int
	n     int
}

func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{data: make([]float64, capacity)}
}

func (r *Ring) Push(v float64) {
	if r.n < len(r.data) {
		r.data[(r.start+r.n)%len(r.data)] = v
		r.n++
		return
	}
	r.data[r.start] = v
	r.start = (r.start + 1) % len(r.data)
}

func (r *Ring) Len() int { return r.n }
func (r *Ring) Cap() int { return len(r.data) }

// At returns the i-th oldest value.
func (r *Ring) At(i int) float64 {
	return r.data[(r.start+i)%len(r.data)]
}

// Last returns the newest value, or 0 when empty.
func (r *Ring) Last() float64 {
	if r.n == 0 {
		return 0
	}
	return r.At(r.n - 1)
}

// Values returns the contents oldest first.
func (r *Ring) Values() []float64 {
	out := make([]float64, r.n)
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}

func (r *Ring) Clear() {
	r.start = 0
	r.n = 0
}
