package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	GitHubToken string
	GitHubOwner string
	GitHubRepo  string
	Port        string
	LogPath     string
}

// Load reads configuration from the environment, consulting a local
// .env file first when present. GITHUB_TOKEN is the only hard
// requirement; everything else has a working default.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL: getenv("DATABASE_URL", "updater.db"),
		GitHubToken: getenv("GITHUB_TOKEN", ""),
		GitHubOwner: getenv("GITHUB_OWNER", "Edustart-Tech"),
		GitHubRepo:  getenv("GITHUB_REPO", "App-Release-Manager"),
		Port:        getenv("APP_PORT", "3000"),
		LogPath:     getenv("LOG_PATH", ""),
	}

	if cfg.GitHubToken == "" {
		return cfg, errors.New("GITHUB_TOKEN is required")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
