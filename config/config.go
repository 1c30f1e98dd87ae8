package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBDriver string `env:"DB_DRIVER" envDefault:"postgres"`
	DBURL    string `env:"DB_URL"`

	JWTSecret   string `env:"JWT_SECRET"`
	JWTIssuer   string `env:"JWT_ISSUER"`
	JWTAudience string `env:"JWT_AUDIENCE"`

	CORSAllowedOrigins   []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogMode              string        `env:"LOG_MODE" envDefault:"development"`
	SlowRequestThreshold time.Duration `env:"SLOW_REQUEST_THRESHOLD" envDefault:"200ms"`

	TaskSweepSchedule string `env:"TASK_SWEEP_SCHEDULE" envDefault:"0 6 * * *"`

	TwilioAccountSID     string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber    string `env:"TWILIO_PHONE_NUMBER"`
	TwilioWhatsAppNumber string `env:"TWILIO_WHATSAPP_NUMBER"`

	TracingEnabled bool   `env:"TRACING_ENABLED"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"weddingplanner-backend"`

	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"INR"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET not set")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBURL == "" {
		return errors.New("DB_URL not set")
	}
	return nil
}

// MessagingEnabled reports whether Twilio credentials are present.
func (c Config) MessagingEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}
