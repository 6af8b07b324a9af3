package config

import (
	"path/filepath"
	"testing"

	"github.com/kav-sh/orbitals/internal/orbit"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Ticks <= 0 {
		t.Error("ticks should be positive")
	}
	if cfg.TickMs <= 0 {
		t.Error("tick period should be positive")
	}
	if cfg.Dims <= 0 {
		t.Error("dims should be positive")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	cfg := GetPreset("handoff")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Scenario != "handoff" || loaded.Seed != cfg.Seed || loaded.Ticks != cfg.Ticks {
		t.Errorf("roundtrip mismatch: %+v", loaded)
	}
	if len(loaded.Bodies) != len(cfg.Bodies) {
		t.Fatalf("bodies = %d, want %d", len(loaded.Bodies), len(cfg.Bodies))
	}
	if len(loaded.Script) != 1 || loaded.Script[0].Op != "set_sun" {
		t.Errorf("script lost in roundtrip: %+v", loaded.Script)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("triad")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Bodies) != 3 {
		t.Errorf("triad bodies = %d, want 3", len(cfg.Bodies))
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("presets listed = %d, want %d", len(names), len(Presets))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("preset names not sorted: %v", names)
		}
	}
}

func TestPresetsValid(t *testing.T) {
	for name, cfg := range Presets {
		t.Run(name, func(t *testing.T) {
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset invalid: %v", err)
			}
			if err := cfg.Physics.ToSimulation().Validate(); err != nil {
				t.Errorf("physics invalid: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no bodies", func(c *Config) { c.Bodies = nil; c.RandomBodies = 0 }, true},
		{"random only", func(c *Config) { c.Bodies = nil; c.RandomBodies = 4 }, false},
		{"two suns", func(c *Config) { c.Bodies[1].Sun = true }, true},
		{"bad dims", func(c *Config) { c.Bodies[1].Attributes = []float64{1} }, true},
		{"zero dims", func(c *Config) { c.Dims = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetPreset("triad")
			clone := *cfg
			clone.Bodies = append([]BodyConfig(nil), cfg.Bodies...)
			tt.mutate(&clone)
			if err := clone.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToSimulationDefaults(t *testing.T) {
	sim := PhysicsConfig{}.ToSimulation()
	def := orbit.DefaultSimulationConfig()
	if *sim != *def {
		t.Errorf("empty physics should map to defaults: %+v", sim)
	}

	tuned := PhysicsConfig{VelocityDamping: 0.8, MaxVelocity: 0.25}.ToSimulation()
	if tuned.VelocityDamping != 0.8 || tuned.MaxVelocity != 0.25 {
		t.Errorf("overrides not applied: %+v", tuned)
	}
	if tuned.SunAttraction != def.SunAttraction {
		t.Errorf("unset field lost its default: %+v", tuned)
	}
}
