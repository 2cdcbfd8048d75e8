package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/physics"
)

const (
	DefaultDt         = 0.001
	DefaultDuration   = 20.0
	DefaultDecimation = 10
	DefaultPrintEvery = 1000
	DefaultOutput     = "hasil_simulasi.txt"
)

type Config struct {
	Name       string          `yaml:"name,omitempty"`
	Params     physics.Params  `yaml:"params"`
	Dt         float64         `yaml:"dt"`
	Duration   float64         `yaml:"duration"`
	Decimation int             `yaml:"decimation"`
	PrintEvery int             `yaml:"print_every"`
	InitState  InitStateConfig `yaml:"init_state"`
	Output     string          `yaml:"output"`
}

type InitStateConfig struct {
	X1 float64 `yaml:"x1"`
	X2 float64 `yaml:"x2"`
	V1 float64 `yaml:"v1"`
	V2 float64 `yaml:"v2"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "reference",
		Params:     physics.ReferenceParams(),
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Decimation: DefaultDecimation,
		PrintEvery: DefaultPrintEvery,
		Output:     DefaultOutput,
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep
// their reference values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if c.PrintEvery < 1 {
		return fmt.Errorf("%w: print_every must be >= 1, got %d", dynamo.ErrPrecondition, c.PrintEvery)
	}
	if !c.GetInitState().IsValid() {
		return dynamo.NonFinite("init_state")
	}
	return nil
}

func (c *Config) GetInitState() dynamo.State {
	return dynamo.State{c.InitState.X1, c.InitState.X2, c.InitState.V1, c.InitState.V2}
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		Dt:         c.Dt,
		Duration:   c.Duration,
		Decimation: c.Decimation,
	}
}
