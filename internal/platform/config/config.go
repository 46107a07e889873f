package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"RUTKIT_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"RUTKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"RUTKIT_LOG_FORMAT" envDefault:"json"` // json | text
	ShutdownTimeout time.Duration `env:"RUTKIT_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"RUTKIT_REQUEST_TIMEOUT" envDefault:"15s"`
	Limits          Limits
}

// Limits bounds the work a single request can ask for.
type Limits struct {
	MaxGenerateCount int `env:"RUTKIT_MAX_GENERATE" envDefault:"1000"`
	MaxBatchSize     int `env:"RUTKIT_MAX_BATCH" envDefault:"500"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (s Server) validate() error {
	switch s.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("RUTKIT_LOG_FORMAT must be json or text, got %q", s.LogFormat)
	}
	if s.Limits.MaxGenerateCount < 1 {
		return fmt.Errorf("RUTKIT_MAX_GENERATE must be positive, got %d", s.Limits.MaxGenerateCount)
	}
	if s.Limits.MaxBatchSize < 1 {
		return fmt.Errorf("RUTKIT_MAX_BATCH must be positive, got %d", s.Limits.MaxBatchSize)
	}
	return nil
}
