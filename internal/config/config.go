package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/raysim/internal/geom"
	"github.com/san-kum/raysim/internal/optics"
	"github.com/san-kum/raysim/internal/physics"
	"github.com/san-kum/raysim/internal/world"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultWidth    = 1000.0
	DefaultHeight   = 1000.0
)

// ErrInvalidConfig is returned by Validate and BuildWorld.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name      string           `yaml:"name"`
	Dt        float64          `yaml:"dt"`
	Duration  float64          `yaml:"duration"`
	Seed      int64            `yaml:"seed"`
	World     WorldConfig      `yaml:"world"`
	Rays      RayConfig        `yaml:"rays"`
	Particles []ParticleConfig `yaml:"particles,omitempty"`
	Random    RandomConfig     `yaml:"random_particles,omitempty"`
	Forces    []ForceConfig    `yaml:"forces,omitempty"`
	Mirrors   []MirrorConfig   `yaml:"mirrors,omitempty"`
}

type WorldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Boundary string  `yaml:"boundary"`
}

type RayConfig struct {
	Count     int `yaml:"count"`
	MaxPoints int `yaml:"max_points"`
	Workers   int `yaml:"workers"`
}

// ParticleConfig places one particle. A zero mass means 1.
type ParticleConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	VX   float64 `yaml:"vx"`
	VY   float64 `yaml:"vy"`
	Mass float64 `yaml:"mass,omitempty"`
}

// RandomConfig spawns Count particles with every coordinate drawn
// uniformly from its [min, max] range. A zero mass means 1.
type RandomConfig struct {
	Count int        `yaml:"count"`
	X     [2]float64 `yaml:"x,flow"`
	Y     [2]float64 `yaml:"y,flow"`
	VX    [2]float64 `yaml:"vx,flow"`
	VY    [2]float64 `yaml:"vy,flow"`
	Mass  float64    `yaml:"mass,omitempty"`
}

// ForceConfig describes a force field. For "constant" X and Y are the force
// vector; for "central" they are the center and Magnitude is k.
type ForceConfig struct {
	Type      string  `yaml:"type"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Magnitude float64 `yaml:"magnitude,omitempty"`
}

type MirrorConfig struct {
	X0 float64 `yaml:"x0"`
	Y0 float64 `yaml:"y0"`
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "default",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		World: WorldConfig{
			Width:    DefaultWidth,
			Height:   DefaultHeight,
			Boundary: world.BoundaryRemove.String(),
		},
		Rays: RayConfig{
			Count:     optics.DefaultRayCount,
			MaxPoints: optics.DefaultMaxPoints,
			Workers:   1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Particles = append([]ParticleConfig(nil), c.Particles...)
	out.Forces = append([]ForceConfig(nil), c.Forces...)
	out.Mirrors = append([]MirrorConfig(nil), c.Mirrors...)
	return &out
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c *Config) Validate() error {
	if !c.IsFinite() {
		return invalid("non-finite value")
	}
	if !(c.Dt > 0) {
		return invalid("dt must be positive, got %v", c.Dt)
	}
	if !(c.Duration > 0) {
		return invalid("duration must be positive, got %v", c.Duration)
	}
	if !(c.World.Width > 0) || !(c.World.Height > 0) {
		return invalid("world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if _, err := world.ParseBoundary(c.World.Boundary); err != nil {
		return invalid("%v", err)
	}
	if c.Rays.Count < 0 {
		return invalid("ray count must not be negative")
	}
	if c.Rays.MaxPoints != 0 && c.Rays.MaxPoints < 2 {
		return invalid("a ray needs at least 2 points, got %d", c.Rays.MaxPoints)
	}
	if c.Rays.Workers < 0 {
		return invalid("workers must not be negative")
	}

	for i, p := range c.Particles {
		if p.Mass < 0 {
			return invalid("particle %d: negative mass %v", i, p.Mass)
		}
	}

	if c.Random.Count < 0 {
		return invalid("random particle count must not be negative")
	}
	if c.Random.Mass < 0 {
		return invalid("random particles: negative mass %v", c.Random.Mass)
	}
	for name, r := range map[string][2]float64{"x": c.Random.X, "y": c.Random.Y, "vx": c.Random.VX, "vy": c.Random.VY} {
		if r[0] > r[1] {
			return invalid("random particles: %s range [%v, %v] is reversed", name, r[0], r[1])
		}
	}

	for i, f := range c.Forces {
		switch strings.ToLower(f.Type) {
		case "constant", "central":
		default:
			return invalid("force %d: unknown type %q", i, f.Type)
		}
	}

	for i, m := range c.Mirrors {
		if m.X0 == m.X1 && m.Y0 == m.Y1 {
			return invalid("mirror %d: endpoints coincide", i)
		}
	}
	return nil
}

// BuildWorld validates c and assembles the world it describes. Random
// particles are drawn from a generator seeded with c.Seed, so the same
// configuration always produces the same world.
func (c *Config) BuildWorld(logger *slog.Logger) (*world.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	boundary, _ := world.ParseBoundary(c.World.Boundary)
	w, err := world.New(c.World.Width, c.World.Height,
		world.WithBoundary(boundary),
		world.WithRayCount(c.Rays.Count),
		world.WithMaxRayPoints(c.Rays.MaxPoints),
		world.WithWorkers(c.Rays.Workers),
		world.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	for i, pc := range c.Particles {
		p, err := physics.NewParticle(geom.Vec(pc.X, pc.Y), geom.Vec(pc.VX, pc.VY), massOrDefault(pc.Mass))
		if err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
		w.AddParticle(p)
	}

	rng := rand.New(rand.NewSource(c.Seed))
	for i := 0; i < c.Random.Count; i++ {
		r := geom.Vec(uniform(rng, c.Random.X), uniform(rng, c.Random.Y))
		v := geom.Vec(uniform(rng, c.Random.VX), uniform(rng, c.Random.VY))
		p, err := physics.NewParticle(r, v, massOrDefault(c.Random.Mass))
		if err != nil {
			return nil, fmt.Errorf("random particle %d: %w", i, err)
		}
		w.AddParticle(p)
	}

	for _, fc := range c.Forces {
		switch strings.ToLower(fc.Type) {
		case "constant":
			w.AddForce(physics.NewConstantForce(geom.Vec(fc.X, fc.Y)))
		case "central":
			w.AddForce(physics.NewCentralForce(geom.Vec(fc.X, fc.Y), fc.Magnitude))
		}
	}

	for i, mc := range c.Mirrors {
		m, err := optics.NewPlaneMirror(geom.Vec(mc.X0, mc.Y0), geom.Vec(mc.X1, mc.Y1))
		if err != nil {
			return nil, fmt.Errorf("mirror %d: %w", i, err)
		}
		w.AddMirror(m)
	}

	w.Refresh()
	return w, nil
}

func massOrDefault(m float64) float64 {
	if m == 0 {
		return 1
	}
	return m
}

func uniform(rng *rand.Rand, r [2]float64) float64 {
	if r[0] == r[1] {
		return r[0]
	}
	return r[0] + rng.Float64()*(r[1]-r[0])
}

// IsFinite reports whether every numeric field is finite.
func (c *Config) IsFinite() bool {
	vals := []float64{c.Dt, c.Duration, c.World.Width, c.World.Height,
		c.Random.X[0], c.Random.X[1], c.Random.Y[0], c.Random.Y[1],
		c.Random.VX[0], c.Random.VX[1], c.Random.VY[0], c.Random.VY[1], c.Random.Mass}
	for _, p := range c.Particles {
		vals = append(vals, p.X, p.Y, p.VX, p.VY, p.Mass)
	}
	for _, f := range c.Forces {
		vals = append(vals, f.X, f.Y, f.Magnitude)
	}
	for _, m := range c.Mirrors {
		vals = append(vals, m.X0, m.Y0, m.X1, m.Y1)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
