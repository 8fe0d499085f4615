package config

import (
	"time"
)

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[zakat]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

// Zakat holds the defaults applied to calculations that leave a field empty.
type Zakat struct {
	BaseCurrency     string `envconfig:"BASE_CURRENCY" default:"USD"`
	HomeCurrency     string `envconfig:"HOME_CURRENCY"`
	NisabBasis       string `envconfig:"NISAB_BASIS" default:"silver"`
	DebtDeduction    string `envconfig:"DEBT_DEDUCTION" default:"majority"`
	RetirementMethod string `envconfig:"RETIREMENT_METHOD" default:"fcna"`
	JewelryMethod    string `envconfig:"JEWELRY_METHOD" default:"hanafi"`
	StockValuation   string `envconfig:"STOCK_VALUATION" default:"asset-based"`
	StockInputMode   string `envconfig:"STOCK_INPUT_MODE" default:"quick"`
	HawlCheck        string `envconfig:"HAWL_CHECK" default:"yes"`
	PurityFile       string `envconfig:"PURITY_FILE"`
	CurrencyFile     string `envconfig:"CURRENCY_FILE"`
}

// Snapshot configures where prices and exchange rates come from.
type Snapshot struct {
	Path     string        `envconfig:"PATH"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"15m"`
	MaxAge   time.Duration `envconfig:"MAX_AGE" default:"24h"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Zakat     *Zakat     `envconfig:"ZAKAT"`
	Snapshot  *Snapshot  `envconfig:"SNAPSHOT"`
}
