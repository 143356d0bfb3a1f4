package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/raysim/internal/logging"
	"github.com/san-kum/raysim/internal/world"
)

type Simulator struct {
	world     *world.World
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(w *world.World, logger *slog.Logger) *Simulator {
	return &Simulator{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logging.OrNop(logger),
	}
}

func (s *Simulator) World() *world.World    { return s.world }
func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Steps returns the number of whole steps of size cfg.Dt in cfg.Duration.
func (c Config) Steps() int {
	return int(math.Floor(c.Duration/c.Dt + 1e-9))
}

// Run advances the world for cfg.Duration in steps of cfg.Dt. On
// cancellation or divergence the partial result is returned with the error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{Metrics: make(map[string]float64)}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.observe()

	s.logger.Info("run started", "steps", steps, "dt", cfg.Dt, "particles", s.world.Len())

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		s.world.Update(cfg.Dt)

		if err := s.checkState(i); err != nil {
			runErr = err
			break
		}

		result.Steps++
		s.observe()
	}

	s.finish(result)
	if runErr != nil {
		s.logger.Warn("run stopped", "step", result.Steps, "error", runErr)
		return result, runErr
	}
	s.logger.Info("run finished", "steps", result.Steps, "survivors", len(result.Particles), "removed", result.Removed)
	return result, nil
}

// RunWithCallback steps the world until cfg.Duration has elapsed or the
// callback returns false. The callback sees the world before each step.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(w *world.World) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	for i := 0; i < cfg.Steps(); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s.world) {
			return nil
		}

		s.world.Update(cfg.Dt)
		if err := s.checkState(i); err != nil {
			return err
		}
		for _, obs := range s.observers {
			obs.OnStep(s.world)
		}
	}

	return nil
}

func (s *Simulator) observe() {
	for _, m := range s.metrics {
		m.Observe(s.world)
	}
	for _, obs := range s.observers {
		obs.OnStep(s.world)
	}
}

func (s *Simulator) finish(result *Result) {
	result.Time = s.world.Time()
	result.Particles = s.world.Particles()
	result.Rays = s.world.Rays()
	result.Removed = s.world.Removed()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) checkState(step int) error {
	for _, p := range s.world.Particles() {
		if !p.IsFinite() {
			return &StepError{
				Step:     step,
				Time:     s.world.Time(),
				Particle: p.ID(),
				Wrapped:  ErrUnstable,
			}
		}
	}
	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt %v", ErrInvalidRun, cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration %v", ErrInvalidRun, cfg.Duration)
	}
	return nil
}
