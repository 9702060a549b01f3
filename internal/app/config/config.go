package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	QuotesEndpoint  string
	SubmitTimeout   time.Duration
	CORSAllowOrigin string
	LogLevel        string
	AppEnv          string
	FormTTL         time.Duration
	DownloadDir     string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first; variables already set win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	submitTimeout, err := envDuration("SUBMIT_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	formTTL, err := envDuration("FORM_TTL", 2*time.Hour)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		QuotesEndpoint:  env("QUOTES_ENDPOINT", "http://localhost:3000/api/quotes"),
		SubmitTimeout:   submitTimeout,
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "*"),
		LogLevel:        env("LOG_LEVEL", "info"),
		AppEnv:          env("APP_ENV", "prod"),
		FormTTL:         formTTL,
		DownloadDir:     env("DOWNLOAD_DIR", "."),
	}, nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", k, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", k, v)
	}
	return d, nil
}
