package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/raysim/internal/config"
	"github.com/san-kum/raysim/internal/storage"
)

const defaultScene = "mirrors"

var errBadParticle = errors.New("particle must be x,y,vx,vy[,mass]")

// loadScene resolves the configuration named by args: a config file, a
// built-in scene or a saved run, in that order. Flags the user set override
// the loaded values.
func loadScene(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := resolve(args)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("rays") {
		cfg.Rays.Count = rayCount
	}
	if flags.Changed("boundary") {
		cfg.World.Boundary = boundary
	}
	if flags.Changed("workers") {
		cfg.Rays.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	} else if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	for _, s := range particles {
		p, err := parseParticle(s)
		if err != nil {
			return nil, fmt.Errorf("--particle %q: %w", s, err)
		}
		cfg.Particles = append(cfg.Particles, p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolve(args []string) (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	name := defaultScene
	if len(args) > 0 {
		name = args[0]
	}
	if cfg := config.GetPreset(name); cfg != nil {
		return cfg, nil
	}

	cfg, err := storage.New(dataDir).LoadConfig(name)
	if errors.Is(err, storage.ErrRunNotFound) {
		return nil, fmt.Errorf("unknown scene: %s (available: %s)", name, strings.Join(config.ListPresets(), ", "))
	}
	return cfg, err
}

func parseParticle(s string) (config.ParticleConfig, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 && len(fields) != 5 {
		return config.ParticleConfig{}, errBadParticle
	}
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return config.ParticleConfig{}, fmt.Errorf("%w: %v", errBadParticle, err)
		}
		vals[i] = v
	}
	p := config.ParticleConfig{X: vals[0], Y: vals[1], VX: vals[2], VY: vals[3]}
	if len(vals) == 5 {
		p.Mass = vals[4]
	}
	return p, nil
}
