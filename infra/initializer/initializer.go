package initializer

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/amirasaad/zakat/pkg/config"
	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/provider"
	"github.com/amirasaad/zakat/pkg/units"
	"github.com/amirasaad/zakat/pkg/zakat"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (deps *config.Deps, err error) {
	if cfg == nil {
		cfg = &config.App{}
	}
	logger := setupLogger(cfg.Log, os.Stdout)
	deps = &config.Deps{Logger: logger, Config: cfg}

	zcfg := cfg.Zakat
	if zcfg == nil {
		zcfg = &config.Zakat{}
	}
	if _, err = zcfg.Methodology(); err != nil {
		return nil, fmt.Errorf("invalid default methodology: %w", err)
	}

	deps.CurrencyRegistry, err = newRegistry(zcfg.CurrencyFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize currency registry: %w", err)
	}
	if zcfg.BaseCurrency != "" && !deps.CurrencyRegistry.IsSupported(zcfg.BaseCurrency) {
		return nil, fmt.Errorf("default base currency: %w: %s", currency.ErrUnsupportedCurrency, zcfg.BaseCurrency)
	}

	var opts []zakat.Option
	if zcfg.PurityFile != "" {
		table, err := units.LoadPurityFile(zcfg.PurityFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load purity table: %w", err)
		}
		logger.Info("Loaded purity table", "path", zcfg.PurityFile, "standards", len(table.Standards()))
		opts = append(opts, zakat.WithPurityTable(table))
	}
	deps.Calculator = zakat.New(opts...)

	deps.Source, err = newSource(cfg.Snapshot, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize price source: %w", err)
	}
	return deps, nil
}

// newRegistry loads currency metadata from path, or the embedded CSV.
func newRegistry(path string, logger *slog.Logger) (*currency.Registry, error) {
	metas, err := currency.LoadMetaCSV(path)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded currency metadata", "path", path, "count", len(metas))
	return currency.NewRegistry(metas...), nil
}

// newSource chains the configured snapshot file in front of the embedded
// snapshot and caches whichever answers.
func newSource(cfg *config.Snapshot, logger *slog.Logger) (provider.Source, error) {
	if cfg == nil {
		cfg = &config.Snapshot{CacheTTL: 15 * time.Minute}
	}

	embedded, err := provider.NewCommitted("")
	if err != nil {
		return nil, err
	}

	var src provider.Source = embedded
	if cfg.Path != "" {
		src = provider.Chain{provider.NewFile(cfg.Path), embedded}
	}
	if cfg.CacheTTL > 0 {
		src = provider.NewCached(src, cfg.CacheTTL)
	}
	logger.Info("Price source ready", "source", src.Metadata().Name, "cache_ttl", cfg.CacheTTL)
	return src, nil
}
