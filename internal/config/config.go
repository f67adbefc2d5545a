package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the extraction tool settings. Command-line flags override
// values loaded from a file.
type Config struct {
	Inputs       []string `yaml:"inputs"`
	OutputDir    string   `yaml:"output_dir"`
	SamplingRate float64  `yaml:"sampling_rate"` // <=0 means use the scene rate
	Preview      bool     `yaml:"preview"`
	Track        string   `yaml:"track"` // ad-hoc "node:property" extraction
	Workers      int      `yaml:"workers"`
	ShowStats    bool     `yaml:"show_stats"`
	Verbose      bool     `yaml:"verbose"`
	BuildVersion string   `yaml:"-"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		OutputDir: "output",
		Workers:   1,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
