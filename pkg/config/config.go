// Package config loads the YAML configuration shared by the CLI commands
// and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"gnc_sssp/pkg/trajectory"
)

var validate = validator.New()

// Config is the root of the configuration file.
type Config struct {
	Log       LogConfig         `yaml:"log"`
	Graph     GraphConfig       `yaml:"graph"`
	Generator trajectory.Params `yaml:"generator"`
	Benchmark BenchmarkConfig   `yaml:"benchmark"`
	Server    ServerConfig      `yaml:"server"`
	Solver    SolverConfig      `yaml:"solver"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// GraphConfig names the graph file loaded by solve, bench and serve.
type GraphConfig struct {
	Path string `yaml:"path"`
}

// BenchmarkConfig holds defaults for the bench command.
type BenchmarkConfig struct {
	Source     int `yaml:"source" validate:"gte=0"`
	Iterations int `yaml:"iterations" validate:"min=1,max=100000"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr" validate:"required"`
	ReadTimeout    time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `yaml:"write_timeout" validate:"gt=0"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	MaxConcurrent  int           `yaml:"max_concurrent" validate:"min=1"`
	CORSOrigin     string        `yaml:"cors_origin"`
	// MaxIterations bounds benchmark requests.
	MaxIterations int `yaml:"max_iterations" validate:"min=1"`
}

// SolverConfig tunes the solver.
type SolverConfig struct {
	// Preprocess builds the decomposition before serving or solving.
	Preprocess bool `yaml:"preprocess"`
	// Concurrency bounds SolveMany; 0 means unlimited.
	Concurrency int `yaml:"concurrency" validate:"gte=0"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Generator: trajectory.Params{
			PositionResolution: 100,
			VelocityResolution: 50,
			TimeSteps:          20,
			MaxThrust:          1000,
			SpecificImpulse:    300,
		},
		Benchmark: BenchmarkConfig{Source: 0, Iterations: 10},
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 25 * time.Second,
			MaxConcurrent:  runtime.NumCPU() * 2,
			MaxIterations:  1000,
		},
		Solver: SolverConfig{Preprocess: true},
	}
}

// Load reads path over the defaults and validates the result. Keys missing
// from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}

// NewLogger builds a logrus logger from the log section.
func (l LogConfig) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if l.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
