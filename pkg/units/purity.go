package units

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed purity.yaml
var purityYAML string

var (
	// ErrUnknownPuritySource is returned for a source id that is not tabulated.
	ErrUnknownPuritySource = errors.New("unknown purity source")

	// ErrInvalidPurityTable is returned when a purity file cannot be used.
	ErrInvalidPurityTable = errors.New("invalid purity table")
)

// DefaultKarat is used when a holding does not state its karat.
const DefaultKarat = 22

var twentyFour = decimal.NewFromInt(24)

// PuritySource identifies a regional purity standard.
type PuritySource string

const (
	India      PuritySource = "india"
	MiddleEast PuritySource = "middle-east"
	Thailand   PuritySource = "thailand"
	HongKong   PuritySource = "hongkong"
	Custom     PuritySource = "custom"
)

// ParsePuritySource validates a source id. Custom is always accepted.
func ParsePuritySource(s string) (PuritySource, error) {
	src := PuritySource(strings.ToLower(strings.TrimSpace(s)))
	switch src {
	case India, MiddleEast, Thailand, HongKong, Custom:
		return src, nil
	default:
		return "", ErrUnknownPuritySource
	}
}

// Standard is one regional purity standard.
type Standard struct {
	ID           PuritySource            `json:"id"`
	Label        string                  `json:"label"`
	Region       string                  `json:"region"`
	DefaultKarat int                     `json:"default_karat"`
	Purity       map[int]decimal.Decimal `json:"purity"`
}

// PurityTable maps purity sources to their standards.
type PurityTable struct {
	standards map[PuritySource]Standard
}

type purityFile struct {
	Standards []struct {
		ID           string         `yaml:"id"`
		Label        string         `yaml:"label"`
		Region       string         `yaml:"region"`
		DefaultKarat int            `yaml:"default_karat"`
		Purity       map[int]string `yaml:"purity"`
	} `yaml:"standards"`
}

// LoadPurityTable parses a YAML purity file.
func LoadPurityTable(r io.Reader) (*PurityTable, error) {
	var f purityFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPurityTable, err)
	}
	if len(f.Standards) == 0 {
		return nil, fmt.Errorf("%w: no standards", ErrInvalidPurityTable)
	}

	t := &PurityTable{standards: make(map[PuritySource]Standard, len(f.Standards))}
	for _, s := range f.Standards {
		if s.ID == "" || PuritySource(s.ID) == Custom {
			return nil, fmt.Errorf("%w: invalid standard id %q", ErrInvalidPurityTable, s.ID)
		}
		std := Standard{
			ID:           PuritySource(s.ID),
			Label:        s.Label,
			Region:       s.Region,
			DefaultKarat: s.DefaultKarat,
			Purity:       make(map[int]decimal.Decimal, len(s.Purity)),
		}
		if std.DefaultKarat == 0 {
			std.DefaultKarat = DefaultKarat
		}
		for karat, raw := range s.Purity {
			ratio, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s %dK: %v", ErrInvalidPurityTable, s.ID, karat, err)
			}
			if !ratio.IsPositive() || ratio.GreaterThan(decimal.NewFromInt(1)) {
				return nil, fmt.Errorf("%w: %s %dK ratio %s outside (0, 1]", ErrInvalidPurityTable, s.ID, karat, raw)
			}
			std.Purity[karat] = ratio
		}
		t.standards[std.ID] = std
	}
	return t, nil
}

// LoadPurityFile reads a purity table from path.
func LoadPurityFile(path string) (*PurityTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open purity file: %w", err)
	}
	defer f.Close() //nolint:errcheck
	return LoadPurityTable(f)
}

var defaultTable = sync.OnceValue(func() *PurityTable {
	t, err := LoadPurityTable(strings.NewReader(purityYAML))
	if err != nil {
		panic(fmt.Sprintf("units: embedded purity table: %v", err))
	}
	return t
})

// DefaultPurityTable returns the embedded regional standards.
func DefaultPurityTable() *PurityTable {
	return defaultTable()
}

// Standards lists the tabulated standards ordered by id.
func (t *PurityTable) Standards() []Standard {
	out := make([]Standard, 0, len(t.standards))
	for _, s := range t.standards {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Standard returns the standard for source.
func (t *PurityTable) Standard(source PuritySource) (Standard, bool) {
	s, ok := t.standards[source]
	return s, ok
}

// Ratio returns the fine-gold ratio for a karat under a regional standard.
//
// A custom source with a supplied ratio returns that ratio verbatim.
// Karats 24, 22, 21 and 18 are read from the standard; any other karat,
// and any source without a standard, falls back to karat/24.
func (t *PurityTable) Ratio(source PuritySource, karat int, custom decimal.NullDecimal) decimal.Decimal {
	if source == Custom && custom.Valid {
		return custom.Decimal
	}
	fallback := decimal.NewFromInt(int64(karat)).DivRound(twentyFour, 32)

	std, ok := t.standards[source]
	if !ok {
		return fallback
	}
	switch karat {
	case 24, 22, 21, 18:
		if ratio, ok := std.Purity[karat]; ok {
			return ratio
		}
	}
	return fallback
}

// DefaultKarat returns the customary karat of a source.
func (t *PurityTable) DefaultKarat(source PuritySource) int {
	if std, ok := t.standards[source]; ok {
		return std.DefaultKarat
	}
	return DefaultKarat
}

// GoldGrams is the canonical gold valuation primitive.
type GoldGrams struct {
	Gross  decimal.Decimal `json:"gross_grams"`
	Purity decimal.Decimal `json:"purity_ratio"`
	Pure   decimal.Decimal `json:"pure_grams"`
}

// PureGoldGrams converts a weight to gross grams and applies the purity ratio.
func (t *PurityTable) PureGoldGrams(
	weight decimal.Decimal,
	unit Unit,
	source PuritySource,
	karat int,
	custom decimal.NullDecimal,
) GoldGrams {
	gross := ToGrams(weight, unit)
	ratio := t.Ratio(source, karat, custom)
	return GoldGrams{
		Gross:  gross,
		Purity: ratio,
		Pure:   gross.Mul(ratio),
	}
}

// PurityRatio looks up a ratio in the embedded table.
func PurityRatio(source PuritySource, karat int, custom decimal.NullDecimal) decimal.Decimal {
	return DefaultPurityTable().Ratio(source, karat, custom)
}

// PureGoldGrams computes gold grams with the embedded table.
func PureGoldGrams(
	weight decimal.Decimal,
	unit Unit,
	source PuritySource,
	karat int,
	custom decimal.NullDecimal,
) GoldGrams {
	return DefaultPurityTable().PureGoldGrams(weight, unit, source, karat, custom)
}
