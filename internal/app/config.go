package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // hcl project file

	LogFormat string
	LogLevel  string
	// Workers overrides references.workers from the project file when > 0.
	Workers int
	// ManifestPath, when set, receives a YAML summary of the run.
	ManifestPath string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("Workers cannot be negative")
	}
	return &cfg, nil
}
