package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/raysim/internal/config"
	"github.com/san-kum/raysim/internal/sim"
	"github.com/san-kum/raysim/internal/telemetry"
)

type EntityData struct {
	ID     uint64               `json:"id"`
	Kind   string               `json:"kind"`
	Series map[string][]float64 `json:"series"`
}

type ParticleData struct {
	ID   uint64     `json:"id"`
	Mass float64    `json:"mass"`
	R    [2]float64 `json:"r"`
	V    [2]float64 `json:"v"`
	A    [2]float64 `json:"a"`
}

// RunData is the JSON document of one finished run.
type RunData struct {
	Scene     string             `json:"scene"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Seed      int64              `json:"seed"`
	Steps     int                `json:"steps"`
	Time      float64            `json:"time"`
	Removed   int                `json:"removed"`
	Rays      int                `json:"rays"`
	Metrics   map[string]float64 `json:"metrics"`
	Particles []ParticleData     `json:"particles"`
	Entities  []EntityData       `json:"entities,omitempty"`
}

// NewRunData collects cfg, the final state of result and, when rec is not
// nil, every recorded series.
func NewRunData(cfg *config.Config, result *sim.Result, rec *telemetry.Recorder) RunData {
	data := RunData{
		Scene:     cfg.Name,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Seed:      cfg.Seed,
		Steps:     result.Steps,
		Time:      result.Time,
		Removed:   result.Removed,
		Rays:      len(result.Rays),
		Metrics:   result.Metrics,
		Particles: make([]ParticleData, 0, len(result.Particles)),
	}
	for _, p := range result.Particles {
		r, v, a := p.Position(), p.Velocity(), p.Acceleration()
		data.Particles = append(data.Particles, ParticleData{
			ID:   uint64(p.ID()),
			Mass: p.Mass(),
			R:    [2]float64{r.X, r.Y},
			V:    [2]float64{v.X, v.Y},
			A:    [2]float64{a.X, a.Y},
		})
	}

	if rec == nil {
		return data
	}
	for _, id := range rec.IDs() {
		names := rec.Names(id)
		kind, _ := rec.Kind(id)
		e := EntityData{ID: uint64(id), Kind: kind.String(), Series: make(map[string][]float64, len(names))}
		for _, n := range names {
			e.Series[n] = rec.Series(id, n)
		}
		data.Entities = append(data.Entities, e)
	}
	return data
}

// WriteJSON writes data as indented JSON.
func WriteJSON(w io.Writer, data RunData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
