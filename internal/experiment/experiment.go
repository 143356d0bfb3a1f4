package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/raysim/internal/config"
	"github.com/san-kum/raysim/internal/logging"
	"github.com/san-kum/raysim/internal/metrics"
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/sim"
	"github.com/san-kum/raysim/internal/telemetry"
	"github.com/san-kum/raysim/internal/world"
)

// Experiment runs one configuration headless with every metric and a
// recorder large enough to keep the whole run.
type Experiment struct {
	cfg    *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Experiment {
	return &Experiment{cfg: cfg, logger: logging.OrNop(logger)}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) simConfig() sim.Config {
	return sim.Config{Dt: e.cfg.Dt, Duration: e.cfg.Duration}
}

// Outcome is a finished run. Entities lists the world and particles as they
// were before the first step, so particles removed later can still be
// addressed by index.
type Outcome struct {
	Config   *config.Config
	World    *world.World
	Result   *sim.Result
	Recorder *telemetry.Recorder
	Entities []telemetry.Entity
}

// Pick returns the id of the idx-th initial entity; 0 is the world.
func (o *Outcome) Pick(idx int) (physics.ID, error) {
	if idx < 0 || idx >= len(o.Entities) {
		return 0, fmt.Errorf("entity %d out of range (scene has %d)", idx, len(o.Entities))
	}
	return o.Entities[idx].ID, nil
}

// Run builds the world and simulates it. On cancellation or divergence the
// partial outcome is returned with the error.
func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	w, err := e.cfg.BuildWorld(e.logger)
	if err != nil {
		return nil, err
	}

	rec := telemetry.NewRecorder(max(telemetry.DefaultCapacity, e.simConfig().Steps()+1))
	rec.SetObserver(w.ID())

	s := sim.New(w, e.logger)
	for _, m := range metrics.All() {
		s.AddMetric(m)
	}
	s.AddObserver(rec)

	out := &Outcome{Config: e.cfg, World: w, Recorder: rec, Entities: telemetry.Entities(w)}
	out.Result, err = s.Run(ctx, e.simConfig())
	if err != nil {
		return out, err
	}
	return out, nil
}
