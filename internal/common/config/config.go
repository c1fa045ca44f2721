package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`

		// Disabled runs the service on in-memory storage only.
		Disabled bool `env:"REDIS_DISABLED" envDefault:"false"`
	}

	Draw struct {
		// SaveDebounce is the window within which snapshot writes are coalesced.
		SaveDebounce time.Duration `env:"DRAW_SAVE_DEBOUNCE" envDefault:"500ms"`

		// DefaultRoundCount is used when a plan request omits the round count.
		DefaultRoundCount int `env:"DRAW_DEFAULT_ROUND_COUNT" envDefault:"3"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine; production sets variables directly.
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
