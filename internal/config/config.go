package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dualgrad/internal/descent"
)

const (
	DefaultLearningRate = 0.1
	DefaultSteps        = 100
	DefaultInit         = 3.0
	DefaultTolerance    = 1e-8
)

type Config struct {
	Function     string  `yaml:"function"`
	LearningRate float64 `yaml:"learning_rate"`
	Steps        int     `yaml:"steps"`
	Init         float64 `yaml:"init"`
	Tolerance    float64 `yaml:"tolerance"`
	Seed         int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Function:     "parabola",
		LearningRate: DefaultLearningRate,
		Steps:        DefaultSteps,
		Init:         DefaultInit,
		Tolerance:    DefaultTolerance,
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

func (c *Config) DescentConfig() descent.Config {
	return descent.Config{
		LearningRate:  c.LearningRate,
		Steps:         c.Steps,
		Tolerance:     c.Tolerance,
		Seed:          c.Seed,
		ValidateState: true,
	}
}
