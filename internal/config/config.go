package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr              string        `env:"OPPSCORE_ADDR" envDefault:":8080"`
	OllamaURL         string        `env:"OPPSCORE_OLLAMA_URL" envDefault:"http://localhost:11434"`
	Model             string        `env:"OPPSCORE_MODEL" envDefault:"llama3"`
	GenerationTimeout time.Duration `env:"OPPSCORE_GENERATION_TIMEOUT" envDefault:"30s"`
	LogLevel          string        `env:"OPPSCORE_LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"OPPSCORE_LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from the environment. Variables found in the
// optional dotenv files are added first without overriding values already
// set in the process environment.
func Load(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
