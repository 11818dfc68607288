package config

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned by Validate when no catalog credential is
// configured. The server refuses to start without one; there is no
// per-request retry.
var ErrMissingAPIKey = errors.New("TMDB_API_KEY is not set")

type Config struct {
	MongoURI       string
	DatabaseName   string
	SessionSecret  string
	ServerPort     string
	Environment    string
	TMDBAPIKey     string
	GoogleClientID string
	AdminUsername  string
	AdminPassword  string
	ClientDistPath string
	Debug          bool
}

// Load reads configuration from the environment, after loading a local .env
// file when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	return &Config{
		MongoURI:       getEnv("MONGO_SRV", "mongodb://localhost:27017"),
		DatabaseName:   getEnv("MONGO_DB_NAME", "moviegenie"),
		SessionSecret:  getEnv("SESSION_SECRET", "session-secret"),
		ServerPort:     getEnv("PORT", "3000"),
		Environment:    getEnv("ENV", "development"),
		TMDBAPIKey:     getEnv("TMDB_API_KEY", ""),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		ClientDistPath: getEnv("CLIENT_DIST_PATH", "client/dist"),
		Debug:          getEnv("DEBUG", "false") == "true",
	}
}

// Validate checks the parts of the configuration the server cannot run
// without.
func (c *Config) Validate() error {
	if c.TMDBAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
