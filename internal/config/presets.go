package config

import "sort"

// Presets are the built-in scenes, keyed by name.
var Presets = map[string]*Config{
	"ballistic": {
		Name: "ballistic", Dt: 0.01, Duration: 10, Seed: 1,
		World: WorldConfig{Width: 800, Height: 600, Boundary: "remove"},
		Rays:  RayConfig{Count: 32, MaxPoints: 100, Workers: 1},
		Random: RandomConfig{
			Count: 25, VX: [2]float64{0, 50}, VY: [2]float64{0, 50}, Mass: 1,
		},
		Forces: []ForceConfig{{Type: "constant", X: 0, Y: -10}},
	},
	"central": {
		Name: "central", Dt: 0.01, Duration: 30, Seed: 1,
		World: WorldConfig{Width: 2000, Height: 2000, Boundary: "remove"},
		Rays:  RayConfig{Count: 32, MaxPoints: 100, Workers: 4},
		Random: RandomConfig{
			Count: 25,
			X:     [2]float64{0, 2000}, Y: [2]float64{0, 2000},
			VX: [2]float64{-100, 100}, VY: [2]float64{-100, 100},
			Mass: 1,
		},
		Forces: []ForceConfig{{Type: "central", X: 1000, Y: 1000, Magnitude: 10000}},
	},
	"mirrors": {
		Name: "mirrors", Dt: 0.01, Duration: 20,
		World:     WorldConfig{Width: 800, Height: 600, Boundary: "remove"},
		Rays:      RayConfig{Count: 128, MaxPoints: 100, Workers: 1},
		Particles: []ParticleConfig{{X: 0, Y: 0, VX: 10, VY: 10, Mass: 1}},
		Mirrors:   []MirrorConfig{{X0: 0, Y0: 100, X1: 100, Y1: 0}},
	},
	"sandbox": {
		Name: "sandbox", Dt: 0.01, Duration: 60, Seed: 1,
		World: WorldConfig{Width: 1000, Height: 1000, Boundary: "wrap"},
		Rays:  RayConfig{Count: 16, MaxPoints: 100, Workers: 4},
		Random: RandomConfig{
			Count: 20,
			X:     [2]float64{0, 1000}, Y: [2]float64{0, 1000},
			VX: [2]float64{-100, 100}, VY: [2]float64{-100, 100},
			Mass: 1,
		},
	},
	"kaleidoscope": {
		Name: "kaleidoscope", Dt: 0.01, Duration: 30, Seed: 7,
		World: WorldConfig{Width: 800, Height: 800, Boundary: "wrap"},
		Rays:  RayConfig{Count: 64, MaxPoints: 100, Workers: 4},
		Random: RandomConfig{
			Count: 4,
			X:     [2]float64{300, 500}, Y: [2]float64{300, 500},
			VX: [2]float64{-20, 20}, VY: [2]float64{-20, 20},
			Mass: 1,
		},
		Forces: []ForceConfig{{Type: "central", X: 400, Y: 400, Magnitude: 500}},
		Mirrors: []MirrorConfig{
			{X0: 200, Y0: 400, X1: 400, Y1: 200},
			{X0: 400, Y0: 200, X1: 600, Y1: 400},
			{X0: 600, Y0: 400, X1: 400, Y1: 600},
			{X0: 400, Y0: 600, X1: 200, Y1: 400},
		},
	},
}

// GetPreset returns a copy of the named scene, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the scene names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
