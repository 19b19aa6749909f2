package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath = "./cotizador.db"
	defaultPort   = "8080"
	defaultPIN    = "0956"
	envDev        = "dev"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	PIN           string
	SessionSecret string
	DBPath        string
	Port          string
	Env           string
	LogLevel      string

	// Warnings lists missing settings that fell back to insecure defaults.
	Warnings []string
}

// Load reads ./.env, if present, and the process environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. Variables already present in
// the environment win over the file; a missing file is not an error.
func LoadFrom(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := Config{
		PIN:           os.Getenv("AUTH_PIN"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        os.Getenv("DB_PATH"),
		Port:          os.Getenv("PORT"),
		Env:           os.Getenv("APP_ENV"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.PIN == "" {
		cfg.PIN = defaultPIN
		cfg.Warnings = append(cfg.Warnings, "AUTH_PIN is not set, using the default PIN")
	}
	if cfg.SessionSecret == "" {
		cfg.Warnings = append(cfg.Warnings, "SESSION_SECRET is not set")
	}

	return cfg, nil
}

// IsDev reports whether the app runs in development mode, where migrations
// run on boot.
func (c Config) IsDev() bool {
	return c.Env == envDev
}
