package config

import (
	"sort"

	"github.com/san-kum/shearsim/internal/physics"
)

func preset(name string, mutate func(c *Config)) *Config {
	c := DefaultConfig()
	c.Name = name
	mutate(c)
	return c
}

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	// floor 1 released from 1 cm with no excitation
	"free_vibration": preset("free_vibration", func(c *Config) {
		c.Params.F0 = 0
		c.Duration = 5.0
		c.InitState.X1 = 0.01
	}),
	// conservative system, energy should stay flat
	"undamped": preset("undamped", func(c *Config) {
		c.Params.F0 = 0
		c.Params.C1 = 0
		c.Params.C2 = 0
		c.Duration = 5.0
		c.InitState = InitStateConfig{X1: 0.01, X2: 0.02, V1: 0.1, V2: -0.05}
	}),
	// floor 2 cut loose; floor 1 behaves as a single-DOF oscillator
	"decoupled": preset("decoupled", func(c *Config) {
		c.Params.K2 = 0
		c.Params.C2 = 0
	}),
	// driven near the first mode
	"resonance": preset("resonance", func(c *Config) {
		modes, err := physics.NaturalFrequencies(c.Params)
		if err == nil {
			c.Params.Omega = modes[0].Omega
		}
		c.Duration = 10.0
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
