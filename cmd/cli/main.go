package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/zakat/infra/initializer"
	"github.com/amirasaad/zakat/pkg/app"
	"github.com/amirasaad/zakat/pkg/config"
	"github.com/fatih/color"
)

const usage = `Usage: zakat <command> [flags]

Commands:
  calculate -f <file>    calculate from a JSON or YAML request
  nisab                  quote the current Nisab threshold
  prices                 show the price snapshot in use
  units                  list gold and silver weight units
  presets                list regional presets
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) < 1 {
		fmt.Fprint(stdout, usage) //nolint:errcheck
		return nil
	}

	cfg, err := config.Load(config.GetEnv("ENV_FILE", ".env"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Log != nil && !config.IsEnvSet("LOG_LEVEL") {
		// keep command output clean unless asked otherwise
		cfg.Log.Level = 8
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	cli := &CLI{svc: app.New(deps).ZakatService, out: stdout}
	return cli.Dispatch(ctx, args)
}
