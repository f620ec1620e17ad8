package config

import (
	"errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string `env:"DB_HOST"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	AppPort    string `env:"APP_PORT" env-default:"8080"`
	AppEnv     string `env:"APP_ENV" env-default:"development"`

	// StoreURL is the public storefront location, always with a trailing slash.
	StoreURL     string `env:"STORE_URL" env-default:"http://localhost:8080/"`
	CurrencyCode string `env:"PRIMARY_CURRENCY_CODE" env-default:"USD"`

	// Admin endpoints accept HS256 tokens signed with this key.
	AdminJWTSecret string `env:"ADMIN_JWT_SECRET"`
}

var ErrMissingDBHost = errors.New("DB_HOST is not set")

// Load reads .env (if present) and the process environment into a Config.
// It fails with ErrMissingDBHost when no database host is configured; the
// returned Config is still populated in that case.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	cfg.StoreURL = normalizeStoreURL(cfg.StoreURL)

	if cfg.DBHost == "" {
		return cfg, ErrMissingDBHost
	}
	return cfg, nil
}

func normalizeStoreURL(u string) string {
	if u == "" || u[len(u)-1] == '/' {
		return u
	}
	return u + "/"
}
