package zakat

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/amirasaad/zakat/pkg/money"
	"github.com/amirasaad/zakat/pkg/units"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

var (
	// ErrUnknownPreset is returned for a preset id that is not defined.
	ErrUnknownPreset = errors.New("unknown regional preset")

	// ErrInvalidPresets is returned when a preset file cannot be used.
	ErrInvalidPresets = errors.New("invalid presets")
)

// Preset bundles the defaults customary for an expatriate community.
type Preset struct {
	ID              string         `json:"id" yaml:"id"`
	Label           string         `json:"label" yaml:"label"`
	Description     string         `json:"description" yaml:"description"`
	BaseCurrency    string         `json:"base_currency" yaml:"base_currency"`
	HomeCurrency    string         `json:"home_currency,omitempty" yaml:"home_currency"`
	GoldUnit        units.Unit     `json:"gold_unit" yaml:"gold_unit"`
	StockInputMode  StockInputMode `json:"stock_input_mode" yaml:"stock_input_mode"`
	NumberingFormat money.Grouping `json:"numbering_format" yaml:"numbering_format"`
}

// Apply sets the preset's currencies and stock mode on in.
func (p Preset) Apply(in Input) Input {
	in.BaseCurrency = p.BaseCurrency
	in.HomeCurrency = p.HomeCurrency
	in.Methodology.StockInputMode = p.StockInputMode
	return in
}

// LoadPresets parses a YAML preset list.
func LoadPresets(r io.Reader) ([]Preset, error) {
	var file struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPresets, err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("%w: no presets", ErrInvalidPresets)
	}

	seen := make(map[string]bool, len(file.Presets))
	for _, p := range file.Presets {
		switch {
		case p.ID == "":
			return nil, fmt.Errorf("%w: preset without id", ErrInvalidPresets)
		case seen[p.ID]:
			return nil, fmt.Errorf("%w: duplicate preset %q", ErrInvalidPresets, p.ID)
		case !money.Code(p.BaseCurrency).IsValid():
			return nil, fmt.Errorf("%w: %s base currency %q", ErrInvalidPresets, p.ID, p.BaseCurrency)
		case !p.GoldUnit.Valid():
			return nil, fmt.Errorf("%w: %s gold unit %q", ErrInvalidPresets, p.ID, p.GoldUnit)
		case !p.StockInputMode.Valid():
			return nil, fmt.Errorf("%w: %s stock input mode %q", ErrInvalidPresets, p.ID, p.StockInputMode)
		}
		if _, err := money.ParseGrouping(string(p.NumberingFormat)); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPresets, p.ID, err)
		}
		seen[p.ID] = true
	}
	return file.Presets, nil
}

var defaultPresets = sync.OnceValue(func() []Preset {
	presets, err := LoadPresets(bytes.NewReader(presetsYAML))
	if err != nil {
		panic(err)
	}
	return presets
})

// Presets returns the built-in presets in display order.
func Presets() []Preset {
	return append([]Preset(nil), defaultPresets()...)
}

// PresetByID returns the built-in preset with id.
func PresetByID(id string) (Preset, error) {
	for _, p := range defaultPresets() {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
}
