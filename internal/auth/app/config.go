package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-driven service configuration.
type Config struct {
	// Issuer is the iss claim stamped into every signed token.
	Issuer string `env:"AUTH_ISSUER" envDefault:"relic-auth"`

	// JWTSecret signs verification and access tokens. Must be at least
	// 32 bytes; the process refuses to start without it.
	JWTSecret string `env:"AUTH_JWT_SECRET"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`
	PepperFile   string `env:"AUTH_PEPPER_FILE" envDefault:"pepper"`

	// RedisAddr selects the one-time-code store. Empty means the
	// in-process store, which does not survive restarts and is only
	// suitable for a single instance.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// ResendAPIKey selects the mailer. Empty means verification codes
	// are written to the log instead of mailed (dev only).
	ResendAPIKey string `env:"RESEND_API_KEY"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"Relic <noreply@relic.chat>"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig parses the environment and validates required settings.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("AUTH_JWT_SECRET must be at least 32 bytes")
	}
	if c.ResendAPIKey == "" && c.Env == "prod" {
		return errors.New("RESEND_API_KEY is required in prod")
	}
	return nil
}

// DevMode reports whether the service runs with development surfaces
// (swagger, log mailer) enabled.
func (c Config) DevMode() bool {
	return c.Env == "dev"
}
