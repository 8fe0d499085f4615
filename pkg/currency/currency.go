package currency

import (
	"errors"
	"sort"
	"sync"

	"github.com/amirasaad/zakat/pkg/money"
)

const (
	// DefaultCurrency is the fallback currency code (USD)
	DefaultCurrency = "USD"
	// DefaultDecimals is the default number of decimal places for currencies
	DefaultDecimals = 2
)

var (
	// ErrUnsupportedCurrency is returned when a code is not in the registry.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// Meta holds currency-specific metadata
type Meta struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	Active   bool   `json:"active"`
}

// Registry keeps the set of currencies the calculator accepts.
type Registry struct {
	mu    sync.RWMutex
	metas map[string]Meta
}

// NewRegistry creates a registry holding the given currencies.
func NewRegistry(metas ...Meta) *Registry {
	r := &Registry{metas: make(map[string]Meta, len(metas))}
	for _, m := range metas {
		r.Register(m)
	}
	return r
}

// NewDefaultRegistry creates a registry from the embedded currency list.
func NewDefaultRegistry() (*Registry, error) {
	metas, err := LoadMetaCSV("")
	if err != nil {
		return nil, err
	}
	return NewRegistry(metas...), nil
}

// Register adds or updates a currency in the registry
func (r *Registry) Register(meta Meta) {
	meta.Code = money.NormalizeCode(meta.Code).String()
	if meta.Symbol == "" {
		meta.Symbol = meta.Code
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metas[meta.Code] = meta
}

// Get returns currency metadata for the given code
func (r *Registry) Get(code string) (Meta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.metas[money.NormalizeCode(code).String()]
	if !ok {
		return Meta{}, ErrUnsupportedCurrency
	}
	return meta, nil
}

// IsSupported checks if a currency code is registered and active
func (r *Registry) IsSupported(code string) bool {
	meta, err := r.Get(code)
	return err == nil && meta.Active
}

// ListSupported returns the active currencies sorted by code.
func (r *Registry) ListSupported() []Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Meta, 0, len(r.metas))
	for _, m := range r.metas {
		if m.Active {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Unregister removes a currency from the registry
func (r *Registry) Unregister(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	code = money.NormalizeCode(code).String()
	if _, ok := r.metas[code]; !ok {
		return false
	}
	delete(r.metas, code)
	return true
}

// Count returns the total number of registered currencies
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.metas)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewDefaultRegistry()
	if err != nil {
		// the embedded list is validated by tests
		panic(err)
	}
	return r
})

// Default returns the process-wide registry built from the embedded list.
func Default() *Registry { return defaultRegistry() }

// Global convenience functions for currency operations

func Register(meta Meta) { Default().Register(meta) }

func Get(code string) (Meta, error) { return Default().Get(code) }

func IsSupported(code string) bool { return Default().IsSupported(code) }

func ListSupported() []Meta { return Default().ListSupported() }

func Unregister(code string) bool { return Default().Unregister(code) }

func Count() int { return Default().Count() }
