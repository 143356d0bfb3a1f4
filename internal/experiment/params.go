package experiment

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/raysim/internal/config"
)

var ErrUnknownParam = errors.New("experiment: unknown parameter")

// setters maps a tunable name to the config field it writes. Counts are
// rounded to the nearest integer.
var setters = map[string]func(c *config.Config, v float64){
	"dt":              func(c *config.Config, v float64) { c.Dt = v },
	"duration":        func(c *config.Config, v float64) { c.Duration = v },
	"seed":            func(c *config.Config, v float64) { c.Seed = int64(v) },
	"world.width":     func(c *config.Config, v float64) { c.World.Width = v },
	"world.height":    func(c *config.Config, v float64) { c.World.Height = v },
	"rays.count":      func(c *config.Config, v float64) { c.Rays.Count = round(v) },
	"rays.max_points": func(c *config.Config, v float64) { c.Rays.MaxPoints = round(v) },
	"rays.workers":    func(c *config.Config, v float64) { c.Rays.Workers = round(v) },
	"random.count":    func(c *config.Config, v float64) { c.Random.Count = round(v) },
	"random.mass":     func(c *config.Config, v float64) { c.Random.Mass = v },
	"force.magnitude": func(c *config.Config, v float64) {
		for i := range c.Forces {
			if strings.EqualFold(c.Forces[i].Type, "central") {
				c.Forces[i].Magnitude = v
			}
		}
	},
}

func round(v float64) int { return int(math.Round(v)) }

// ParamNames lists the tunable parameters in sorted order.
func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns a copy of base with params written into it.
func Apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := base.Clone()
	for name, v := range params {
		set, ok := setters[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParam, name)
		}
		set(cfg, v)
	}
	return cfg, nil
}
