package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/raysim/internal/config"
	"github.com/san-kum/raysim/internal/experiment"
	"github.com/san-kum/raysim/internal/logging"
	"github.com/san-kum/raysim/internal/sim"
	"github.com/san-kum/raysim/internal/storage"
)

var ErrUnknownScene = errors.New("automation: unknown scene")

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs a built-in scene, or the config file at Config, with
// Params applied on top. Save keeps the run in the store.
type ScenarioStep struct {
	Scene  string             `yaml:"scene"`
	Config string             `yaml:"config"`
	Params map[string]float64 `yaml:"params"`
	Save   bool               `yaml:"save"`
}

// StepResult is the outcome of one scenario step. RunID is empty unless
// the step was saved.
type StepResult struct {
	Scene     string
	RunID     string
	Steps     int
	Survivors int
	Metrics   map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func (s ScenarioStep) config() (*config.Config, error) {
	var base *config.Config
	if s.Config != "" {
		cfg, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		base = cfg
	} else if base = config.GetPreset(s.Scene); base == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, s.Scene)
	}
	return experiment.Apply(base, s.Params)
}

// RunScenario executes all steps in order. store may be nil when no step
// is saved. The results of completed steps are returned with any error.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	logger = logging.OrNop(logger)
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "scene", cfg.Name)

		out, err := experiment.New(cfg, logger).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		res := StepResult{
			Scene:     cfg.Name,
			Steps:     out.Result.Steps,
			Survivors: len(out.Result.Particles),
			Metrics:   out.Result.Metrics,
		}
		if step.Save {
			if store == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			if res.RunID, err = store.Save(cfg, out.Result, out.Recorder); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, res)
	}

	return results, nil
}

// ParameterSweep runs a scene once per evenly spaced value of one
// parameter.
type ParameterSweep struct {
	Scene     *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Survivors  int
	Metrics    map[string]float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("automation: sweep needs at least one step, got %d", sweep.NumSteps)
	}
	logger = logging.OrNop(logger)
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg, err := experiment.Apply(sweep.Scene, map[string]float64{sweep.ParamName: paramVal})
		if err != nil {
			return nil, err
		}

		out, err := experiment.New(cfg, nil).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Survivors:  len(out.Result.Particles),
			Metrics:    out.Result.Metrics,
		})
		logger.Info("sweep", "step", i+1, "of", sweep.NumSteps, "param", sweep.ParamName, "value", paramVal)
	}

	return results, nil
}

// MonteCarloConfig perturbs every explicitly placed particle of Scene by up
// to Perturbation in each position and velocity coordinate.
type MonteCarloConfig struct {
	Scene        *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds statistics from Monte Carlo runs
type MonteCarloResult struct {
	TrialID   int
	Particles []config.ParticleConfig
	Survivors int
	Stable    bool // every initial particle still in the world and finite
}

// RunMonteCarlo executes multiple trials with random perturbations
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger *slog.Logger) ([]MonteCarloResult, error) {
	logger = logging.OrNop(logger)
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	jitter := func() float64 { return (rng.Float64() - 0.5) * 2 * cfg.Perturbation }

	for trial := 0; trial < cfg.NumTrials; trial++ {
		scene := cfg.Scene.Clone()
		for i := range scene.Particles {
			p := &scene.Particles[i]
			p.X += jitter()
			p.Y += jitter()
			p.VX += jitter()
			p.VY += jitter()
		}

		out, err := experiment.New(scene, nil).Run(ctx)
		if err != nil && !errors.Is(err, sim.ErrUnstable) {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		stable := err == nil && len(out.Result.Particles) == len(out.Entities)-1
		for _, p := range out.Result.Particles {
			r := p.Position()
			if math.Abs(r.X) > 1e6 || math.Abs(r.Y) > 1e6 {
				stable = false
				break
			}
		}

		results = append(results, MonteCarloResult{
			TrialID:   trial,
			Particles: scene.Particles,
			Survivors: len(out.Result.Particles),
			Stable:    stable,
		})

		if (trial+1)%10 == 0 {
			logger.Info("monte carlo", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo runs
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
