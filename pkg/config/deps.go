package config

import (
	"log/slog"

	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/provider"
	"github.com/amirasaad/zakat/pkg/zakat"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Source           provider.Source
	CurrencyRegistry *currency.Registry
	Calculator       *zakat.Calculator
	Logger           *slog.Logger
	Config           *App
}
