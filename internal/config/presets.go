package config

import "sort"

// Presets are the built-in scenarios. Physics fields left zero fall back
// to the engine defaults through PhysicsConfig.ToSimulation.
var Presets = map[string]*Config{
	"triad": {
		Scenario: "triad", Seed: 7, Ticks: 3600, TickMs: DefaultTickMs, SampleEvery: 6, Dims: 3,
		Bodies: []BodyConfig{
			{Name: "sol", Sun: true, Color: "#f4e285",
				Attributes: []float64{70, 40, 90}, Preferences: []float64{70, 40, 90}},
			{Name: "vega", Color: "#6d9dc5", Position: [3]float64{3, 0, 0},
				Attributes: []float64{70, 40, 90}},
			{Name: "lyra", Color: "#bc4b51", Position: [3]float64{0, 0, -3},
				Attributes: []float64{70, 40, 90}},
		},
	},
	"handoff": {
		Scenario: "handoff", Seed: 11, Ticks: 1200, TickMs: DefaultTickMs, SampleEvery: 3, Dims: 3,
		Bodies: []BodyConfig{
			{Name: "sol", Sun: true, Color: "#f4e285",
				Attributes: []float64{60, 60, 60}, Preferences: []float64{60, 60, 60}},
			{Name: "vega", Color: "#6d9dc5", Position: [3]float64{2.5, 0, 0},
				Attributes: []float64{60, 60, 60}, Preferences: []float64{20, 80, 50}},
			{Name: "lyra", Color: "#bc4b51", Position: [3]float64{0, 1, -2},
				Attributes: []float64{30, 70, 40}},
		},
		Script: []ScriptStep{
			{Tick: 300, Op: "set_sun", Body: "vega"},
		},
	},
	"crowd": {
		Scenario: "crowd", Seed: 42, Ticks: 7200, TickMs: DefaultTickMs, SampleEvery: 12, Dims: 5,
		RandomBodies: 7,
		Bodies: []BodyConfig{
			{Name: "sol", Sun: true, Color: "#f4e285",
				Attributes:  []float64{50, 50, 50, 50, 50},
				Preferences: []float64{80, 20, 60, 40, 70}},
		},
	},
	"misfits": {
		Scenario: "misfits", Seed: 3, Ticks: 5400, TickMs: DefaultTickMs, SampleEvery: 6, Dims: 3,
		Bodies: []BodyConfig{
			{Name: "sol", Sun: true, Color: "#f4e285",
				Attributes: []float64{90, 90, 90}, Preferences: []float64{90, 90, 90}},
			{Name: "echo", Color: "#5b8e7d", Position: [3]float64{2, 0, 2},
				Attributes: []float64{10, 10, 10}},
			{Name: "nadir", Color: "#b185a7", Position: [3]float64{-2, 1, 0},
				Attributes: []float64{15, 5, 20}},
			{Name: "kin", Color: "#8cb369", Position: [3]float64{0, -2, 1},
				Attributes: []float64{85, 95, 90}},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
