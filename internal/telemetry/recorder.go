package telemetry

import (
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/world"
)

const DefaultCapacity = 1000

var (
	ParticleSeries = []string{"t", "x", "y", "vx", "vy", "ax", "ay"}
	WorldSeries    = []string{"t", "E", "px", "py"}
)

type track struct {
	kind   Kind
	series map[string]*Ring
}

func newTrack(kind Kind, capacity int) *track {
	names := ParticleSeries
	if kind == KindWorld {
		names = WorldSeries
	}
	t := &track{kind: kind, series: make(map[string]*Ring, len(names))}
	for _, n := range names {
		t.series[n] = NewRing(capacity)
	}
	return t
}

// Recorder keeps the last Capacity samples of every entity it has seen.
// The zero observer means the world entity.
type Recorder struct {
	capacity int
	every    int
	calls    int
	observer physics.ID
	tracks   map[physics.ID]*track
	order    []physics.ID
}

func NewRecorder(capacity int) *Recorder {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Recorder{
		capacity: capacity,
		every:    1,
		tracks:   make(map[physics.ID]*track),
	}
}

// SetDecimation records only every n-th call.
func (r *Recorder) SetDecimation(n int) {
	if n < 1 {
		n = 1
	}
	r.every = n
}

func (r *Recorder) Observer() physics.ID { return r.observer }

// SetObserver changes the reference frame and drops all history, since
// old samples were measured in the previous frame.
func (r *Recorder) SetObserver(id physics.ID) {
	r.observer = id
	r.Reset()
}

func (r *Recorder) Reset() {
	r.tracks = make(map[physics.ID]*track)
	r.order = nil
	r.calls = 0
}

// OnStep records w; it lets a Recorder observe a simulator run.
func (r *Recorder) OnStep(w *world.World) { r.Record(w) }

// Record appends one sample for every entity of w. An observer that is no
// longer in the world falls back to the world entity.
func (r *Recorder) Record(w *world.World) {
	r.calls++
	if (r.calls-1)%r.every != 0 {
		return
	}

	entities := Entities(w)
	obs, ok := Find(entities, r.observer)
	if !ok {
		obs = entities[0]
	}

	for _, e := range entities {
		t := r.track(e)
		if e.Kind == KindWorld {
			r.recordWorld(t, e, obs, entities)
			continue
		}
		t.series["t"].Push(e.T)
		t.series["x"].Push(e.R.X - obs.R.X)
		t.series["y"].Push(e.R.Y - obs.R.Y)
		t.series["vx"].Push(e.V.X - obs.V.X)
		t.series["vy"].Push(e.V.Y - obs.V.Y)
		t.series["ax"].Push(e.A.X - obs.A.X)
		t.series["ay"].Push(e.A.Y - obs.A.Y)
	}
}

func (r *Recorder) recordWorld(t *track, w, obs Entity, entities []Entity) {
	var energy, px, py float64
	for _, e := range entities {
		if e.Kind != KindParticle {
			continue
		}
		v := e.V.Sub(obs.V)
		energy += 0.5 * e.Mass * v.Dot(v)
		px += e.Mass * v.X
		py += e.Mass * v.Y
	}
	t.series["t"].Push(w.T)
	t.series["E"].Push(energy)
	t.series["px"].Push(px)
	t.series["py"].Push(py)
}

func (r *Recorder) track(e Entity) *track {
	t, ok := r.tracks[e.ID]
	if !ok {
		t = newTrack(e.Kind, r.capacity)
		r.tracks[e.ID] = t
		r.order = append(r.order, e.ID)
	}
	return t
}

// IDs returns every recorded entity in first-seen order.
func (r *Recorder) IDs() []physics.ID {
	out := make([]physics.ID, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns the series names recorded for id, or nil.
func (r *Recorder) Names(id physics.ID) []string {
	t, ok := r.tracks[id]
	if !ok {
		return nil
	}
	if t.kind == KindWorld {
		return WorldSeries
	}
	return ParticleSeries
}

// Series returns a copy of one series, oldest first.
func (r *Recorder) Series(id physics.ID, name string) []float64 {
	t, ok := r.tracks[id]
	if !ok {
		return nil
	}
	s, ok := t.series[name]
	if !ok {
		return nil
	}
	return s.Values()
}

// Len returns the number of samples held for id.
func (r *Recorder) Len(id physics.ID) int {
	t, ok := r.tracks[id]
	if !ok {
		return 0
	}
	return t.series["t"].Len()
}

// Kind returns the kind of a recorded entity.
func (r *Recorder) Kind(id physics.ID) (Kind, bool) {
	t, ok := r.tracks[id]
	if !ok {
		return 0, false
	}
	return t.kind, true
}
