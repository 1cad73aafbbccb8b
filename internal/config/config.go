package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort string `env:"APP_PORT" envDefault:"3100"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// StorageDriver selects the persistence gateway: file or postgres.
	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"file"`
	StorageFile    string        `env:"STORAGE_FILE" envDefault:"storage.json"`
	PersistTimeout time.Duration `env:"PERSIST_TIMEOUT" envDefault:"5s"`

	DBHost     string `env:"DB_HOST"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`

	// Flat-rate pricing policy; decimal strings parsed by the pricing package.
	ShippingFee string `env:"SHIPPING_FEE" envDefault:"5.50"`
	TaxRate     string `env:"TAX_RATE" envDefault:"0.132"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if cfg.StorageDriver != DriverFile && cfg.StorageDriver != DriverPostgres {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.StorageDriver == DriverPostgres && cfg.DBHost == "" {
		return nil, errors.New("DB_HOST is required for the postgres driver")
	}

	return cfg, nil
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
