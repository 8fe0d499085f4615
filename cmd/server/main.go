package main

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/zakat/infra/initializer"
	"github.com/amirasaad/zakat/pkg/app"
	"github.com/amirasaad/zakat/pkg/config"
	"github.com/amirasaad/zakat/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(config.GetEnv("ENV_FILE", ".env"))
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fiberApp := webapi.SetupApp(app.New(deps))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return fiberApp.Listen(addr)
}
