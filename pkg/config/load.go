package config

import (
	"log/slog"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first env file found among envFilePath, falling back to
// .env, and processes the environment into an App.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	// If no specific paths provided, try default .env
	if len(envFilePath) == 0 {
		logger.Debug("No environment file specified, trying default .env")
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	// Try each provided path until we find a valid one
	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvTest(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}

		// Successfully loaded a file, proceed with config loading
		return loadFromEnv()
	}

	// No valid environment files found, try default .env as fallback
	logger.Info("No valid environment files found, using default .env")
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	// Set default values if not set
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	logger := slog.Default()
	attrs := []any{
		"env", cfg.Env,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"base_currency", cfg.Zakat.BaseCurrency,
		"nisab_basis", cfg.Zakat.NisabBasis,
		"hawl_check", cfg.Zakat.HawlCheck,
		"snapshot_cache_ttl", cfg.Snapshot.CacheTTL,
		"snapshot_max_age", cfg.Snapshot.MaxAge,
	}
	if cfg.Snapshot.Path != "" {
		attrs = append(attrs, "snapshot_path", maskPath(cfg.Snapshot.Path))
	}
	logger.Info("App config loaded", attrs...)
	return &cfg, nil
}

// maskPath keeps only the file name of p so logs do not leak home directories.
func maskPath(p string) string {
	return "****/" + filepath.Base(p)
}
