package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath string // graph JSON exported by the editor
	NodesPath string // hcl manifests + .tron templates
	OutPath   string // generated source destination; empty means stdout

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.NodesPath == "" {
		return nil, errors.New("NodesPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
