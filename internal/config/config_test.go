package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Params != physics.ReferenceParams() {
		t.Errorf("expected reference params, got %+v", cfg.Params)
	}
	if cfg.Dt != 0.001 {
		t.Errorf("expected dt 0.001, got %g", cfg.Dt)
	}
	if cfg.SimConfig().Steps() != 20000 {
		t.Errorf("expected 20000 steps, got %d", cfg.SimConfig().Steps())
	}
	if cfg.Output != "hasil_simulasi.txt" {
		t.Errorf("unexpected output %s", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.GetInitState() != (dynamo.State{}) {
		t.Error("reference run starts at rest")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	doc := `
params:
  omega: 25
  f0: 1000
dt: 0.0005
init_state:
  x2: 0.003
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Params.Omega != 25 || cfg.Params.F0 != 1000 {
		t.Errorf("overrides not applied: %+v", cfg.Params)
	}
	if cfg.Params.M1 != physics.DefaultM1 {
		t.Errorf("omitted m1 should keep default, got %g", cfg.Params.M1)
	}
	if cfg.Dt != 0.0005 || cfg.Duration != DefaultDuration {
		t.Errorf("dt=%g duration=%g", cfg.Dt, cfg.Duration)
	}
	if cfg.GetInitState()[dynamo.X2] != 0.003 {
		t.Errorf("init state = %v", cfg.GetInitState())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("undamped")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("params: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero mass", func(c *Config) { c.Params.M2 = 0 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"zero decimation", func(c *Config) { c.Decimation = 0 }},
		{"zero print interval", func(c *Config) { c.PrintEvery = 0 }},
		{"NaN init", func(c *Config) { c.InitState.V1 = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrPrecondition) {
				t.Errorf("expected precondition error, got %v", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("decoupled")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params.K2 != 0 || cfg.Params.C2 != 0 {
		t.Errorf("decoupled preset keeps floor-2 coupling: %+v", cfg.Params)
	}

	cfg.Params.K1 = 1
	if GetPreset("decoupled").Params.K1 == 1 {
		t.Error("GetPreset must return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("ListPresets returned %d of %d", len(names), len(Presets))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}

	res := GetPreset("resonance")
	modes, _ := physics.NaturalFrequencies(res.Params)
	if math.Abs(res.Params.Omega-modes[0].Omega) > 1e-9 {
		t.Errorf("resonance omega %g, first mode %g", res.Params.Omega, modes[0].Omega)
	}
}
