// Package app wires the services the transports share.
package app

import (
	"github.com/amirasaad/zakat/pkg/config"
	zakatsvc "github.com/amirasaad/zakat/pkg/service/zakat"
)

type App struct {
	Deps         *config.Deps
	Config       *config.App
	ZakatService *zakatsvc.Service
}

func New(deps *config.Deps) *App {
	if deps == nil {
		deps = &config.Deps{}
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.App{}
	}
	return &App{
		Deps:         deps,
		Config:       cfg,
		ZakatService: zakatsvc.NewService(*deps),
	}
}
