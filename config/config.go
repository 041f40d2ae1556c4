package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	Debug   bool   `env:"DEBUG" envDefault:"false"`
	SeedDir string `env:"SEED_DIR" envDefault:"seed_data"`

	DB    DBConfig    `envPrefix:"DB_"`
	JWT   JWTConfig   `envPrefix:"JWT_"`
	Media MediaConfig `envPrefix:"MEDIA_"`
	Log   LogConfig   `envPrefix:"LOG_"`

	// Token issuance is limited per client IP.
	TokenRate  float64 `env:"TOKEN_RATE" envDefault:"1"`
	TokenBurst int     `env:"TOKEN_BURST" envDefault:"5"`
}

type DBConfig struct {
	Host           string        `env:"HOST" envDefault:"127.0.0.1"`
	User           string        `env:"USER" envDefault:"portfolio"`
	Password       string        `env:"PASSWORD"`
	Name           string        `env:"NAME" envDefault:"portfolio"`
	Port           string        `env:"PORT" envDefault:"5432"`
	SSLMode        string        `env:"SSLMODE" envDefault:"disable"`
	ConnectRetries int           `env:"CONNECT_RETRIES" envDefault:"5"`
	RetryDelay     time.Duration `env:"RETRY_DELAY" envDefault:"3s"`
}

type JWTConfig struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

type MediaConfig struct {
	Root           string `env:"ROOT" envDefault:"media"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.Media.MaxUploadBytes <= 0 {
		return errors.New("MEDIA_MAX_UPLOAD_BYTES must be positive")
	}
	if c.DB.ConnectRetries < 1 {
		return errors.New("DB_CONNECT_RETRIES must be at least 1")
	}
	if c.TokenRate <= 0 || c.TokenBurst < 1 {
		return errors.New("TOKEN_RATE and TOKEN_BURST must be positive")
	}
	return nil
}

// DSN is the keyword/value connection string used by the GORM driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// URL is the postgres:// form of the connection, used by the migrator.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}
