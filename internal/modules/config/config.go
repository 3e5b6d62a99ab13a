package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Environment keys.
const (
	EnvAPIURL   = "VIDMETA_API_URL"
	EnvAPIKey   = "VIDMETA_API_KEY"
	EnvDataDir  = "VIDMETA_DATA_DIR"
	EnvTimeout  = "VIDMETA_TIMEOUT"
	EnvShareURL = "VIDMETA_SHARE_URL"
)

// Defaults.
const (
	DefaultAPIURL   = "https://api.watchmeta.dev/api/metadata"
	DefaultShareURL = "https://watch.example.com/browse"
	DefaultTimeout  = 10 * time.Second
)

// Config holds the client's runtime settings, resolved once at startup from
// an optional .env file plus the process environment.
type Config struct {
	APIURL   string
	APIKey   string
	DataDir  string
	ShareURL string
	Timeout  time.Duration
}

// Load reads .env if present and resolves every setting with its default.
func Load(logger *zap.Logger) Config {
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	cfg := Config{
		APIURL:   getenv(EnvAPIURL, DefaultAPIURL),
		APIKey:   os.Getenv(EnvAPIKey),
		DataDir:  getenv(EnvDataDir, defaultDataDir()),
		ShareURL: getenv(EnvShareURL, DefaultShareURL),
		Timeout:  DefaultTimeout,
	}

	if raw := os.Getenv(EnvTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			logger.Warn("invalid timeout, using default",
				zap.String("value", raw),
				zap.Duration("default", DefaultTimeout))
		} else {
			cfg.Timeout = d
		}
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".vidmeta"
	}
	return filepath.Join(base, "vidmeta")
}
