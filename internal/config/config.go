// internal/config/config.go
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries every service-level setting. Values come from the
// environment, optionally seeded from a .env file in development.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

	// Origins is the comma-separated CORS allowlist for browser clients.
	Origins []string `env:"ORIGIN_ALLOWLIST" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// AllowedOrigins returns the CORS allowlist.
func (c *Config) AllowedOrigins() []string { return c.Origins }

// Load reads the .env file if present, then parses the environment into a
// Config. A missing .env is not an error; containers set real env vars.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("config: no .env file loaded: %v", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyLogLevel sets the global logrus level from the config, falling back
// to info on an unparseable value.
func (c *Config) ApplyLogLevel() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("config: invalid LOG_LEVEL %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
