// Package config defines the yaml scenario schema for cluster runs and a
// set of named presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kav-sh/orbitals/internal/orbit"
)

const (
	DefaultTicks       = 3600
	DefaultTickMs      = 1000.0 / 60
	DefaultSampleEvery = 6
	DefaultDims        = 5
)

// Config describes one scenario: the initial body roster, physics
// tunables, run length, and an optional script of timed operations.
type Config struct {
	Scenario     string        `yaml:"scenario"`
	Seed         int64         `yaml:"seed"`
	Ticks        int           `yaml:"ticks"`
	TickMs       float64       `yaml:"tick_ms"`
	SampleEvery  int           `yaml:"sample_every"`
	Dims         int           `yaml:"dims"`
	RandomBodies int           `yaml:"random_bodies"`
	Physics      PhysicsConfig `yaml:"physics"`
	Bodies       []BodyConfig  `yaml:"bodies"`
	Script       []ScriptStep  `yaml:"script"`
}

// PhysicsConfig mirrors orbit.SimulationConfig in yaml. Zero values mean
// "use the default", so presets and files only state what they change.
type PhysicsConfig struct {
	SunAttraction        float64 `yaml:"sun_attraction"`
	SunRepulsion         float64 `yaml:"sun_repulsion"`
	PeerAttraction       float64 `yaml:"peer_attraction"`
	PeerAttractionOffset float64 `yaml:"peer_attraction_offset"`
	PeerRepulsion        float64 `yaml:"peer_repulsion"`
	RepulsionThreshold   float64 `yaml:"repulsion_threshold"`
	ForceNudge           float64 `yaml:"force_nudge"`
	MaxVelocity          float64 `yaml:"max_velocity"`
	VelocityDamping      float64 `yaml:"velocity_damping"`
	SwapDurationMs       float64 `yaml:"swap_duration_ms"`
	EditImpulse          float64 `yaml:"edit_impulse"`
}

type BodyConfig struct {
	Name        string     `yaml:"name"`
	Color       string     `yaml:"color"`
	Sun         bool       `yaml:"sun"`
	Position    [3]float64 `yaml:"position"`
	Attributes  []float64  `yaml:"attributes"`
	Preferences []float64  `yaml:"preferences"`
}

// ScriptStep is one timed external operation. Op is one of set_sun,
// add_body, remove_body, set_attribute, set_preference; Body names a roster
// entry.
type ScriptStep struct {
	Tick  int     `yaml:"tick"`
	Op    string  `yaml:"op"`
	Body  string  `yaml:"body"`
	Index int     `yaml:"index"`
	Value float64 `yaml:"value"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    "adhoc",
		Ticks:       DefaultTicks,
		TickMs:      DefaultTickMs,
		SampleEvery: DefaultSampleEvery,
		Dims:        DefaultDims,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// ToSimulation maps the physics section onto the engine config, filling
// unset fields with defaults.
func (p PhysicsConfig) ToSimulation() *orbit.SimulationConfig {
	cfg := orbit.DefaultSimulationConfig()
	if p.SunAttraction != 0 {
		cfg.SunAttraction = p.SunAttraction
	}
	if p.SunRepulsion != 0 {
		cfg.SunRepulsion = p.SunRepulsion
	}
	if p.PeerAttraction != 0 {
		cfg.PeerAttraction = p.PeerAttraction
	}
	if p.PeerAttractionOffset != 0 {
		cfg.PeerAttractionOffset = p.PeerAttractionOffset
	}
	if p.PeerRepulsion != 0 {
		cfg.PeerRepulsion = p.PeerRepulsion
	}
	if p.RepulsionThreshold != 0 {
		cfg.RepulsionThreshold = p.RepulsionThreshold
	}
	if p.ForceNudge != 0 {
		cfg.ForceNudge = p.ForceNudge
	}
	if p.MaxVelocity != 0 {
		cfg.MaxVelocity = p.MaxVelocity
	}
	if p.VelocityDamping != 0 {
		cfg.VelocityDamping = p.VelocityDamping
	}
	if p.SwapDurationMs != 0 {
		cfg.SwapDurationMs = p.SwapDurationMs
	}
	if p.EditImpulse != 0 {
		cfg.EditImpulse = p.EditImpulse
	}
	return cfg
}

// Descriptors converts the roster to engine descriptors. Ids stay zero so
// the cluster assigns them in roster order.
func (c *Config) Descriptors() []orbit.Descriptor {
	descs := make([]orbit.Descriptor, 0, len(c.Bodies))
	for _, b := range c.Bodies {
		descs = append(descs, orbit.Descriptor{
			Name:        b.Name,
			Color:       b.Color,
			Sun:         b.Sun,
			Position:    b.Position,
			Attributes:  b.Attributes,
			Preferences: b.Preferences,
		})
	}
	return descs
}

// Validate catches scenario mistakes early: no roster, several suns, trait
// vectors off the shared dimension.
func (c *Config) Validate() error {
	if len(c.Bodies) == 0 && c.RandomBodies == 0 {
		return fmt.Errorf("scenario %q has no bodies", c.Scenario)
	}
	if c.Dims <= 0 {
		return fmt.Errorf("scenario %q: dims must be positive", c.Scenario)
	}
	suns := 0
	for _, b := range c.Bodies {
		if b.Sun {
			suns++
		}
		if b.Attributes != nil && len(b.Attributes) != c.Dims {
			return fmt.Errorf("body %q: %d attributes, want %d", b.Name, len(b.Attributes), c.Dims)
		}
		if b.Preferences != nil && len(b.Preferences) != c.Dims {
			return fmt.Errorf("body %q: %d preferences, want %d", b.Name, len(b.Preferences), c.Dims)
		}
	}
	if suns > 1 {
		return fmt.Errorf("scenario %q declares %d suns, want at most 1", c.Scenario, suns)
	}
	return nil
}
