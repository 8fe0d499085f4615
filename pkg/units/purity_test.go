package units_test

import (
	"strings"
	"testing"

	"github.com/amirasaad/zakat/pkg/units"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noCustom = decimal.NullDecimal{}

func TestPurityRatio(t *testing.T) {
	tests := []struct {
		name     string
		source   units.PuritySource
		karat    int
		custom   decimal.NullDecimal
		expected string
	}{
		{"india 22K", units.India, 22, noCustom, "0.916"},
		{"india 24K", units.India, 24, noCustom, "0.999"},
		{"india 21K", units.India, 21, noCustom, "0.875"},
		{"india 18K", units.India, 18, noCustom, "0.75"},
		{"thailand 22K differs from india", units.Thailand, 22, noCustom, "0.965"},
		{"middle east 22K", units.MiddleEast, 22, noCustom, "0.917"},
		{"untabulated karat falls back to karat/24", units.India, 12, noCustom, "0.5"},
		{"custom ratio verbatim", units.Custom, 22, decimal.NewNullDecimal(d("0.999")), "0.999"},
		{"custom without ratio falls back", units.Custom, 18, noCustom, "0.75"},
		{"custom ratio ignored for regional source", units.India, 22, decimal.NewNullDecimal(d("0.5")), "0.916"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := units.PurityRatio(tt.source, tt.karat, tt.custom)
			assert.True(t, d(tt.expected).Equal(got), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestPureGoldGrams(t *testing.T) {
	t.Run("15 sovereigns india 22K", func(t *testing.T) {
		g := units.PureGoldGrams(d("15"), units.Sovereign, units.India, 22, noCustom)
		assert.Equal(t, "119.82", g.Gross.String())
		assert.Equal(t, "0.916", g.Purity.String())
		assert.Equal(t, "109.75512", g.Pure.String())
	})

	t.Run("pure grams never exceed gross grams", func(t *testing.T) {
		for _, std := range units.DefaultPurityTable().Standards() {
			for _, karat := range []int{24, 22, 21, 18, 14} {
				for _, info := range units.Units() {
					g := units.PureGoldGrams(d("3.5"), info.Unit, std.ID, karat, noCustom)
					assert.True(t, g.Pure.LessThanOrEqual(g.Gross), "%s %dK %s", std.ID, karat, info.Unit)
					assert.True(t, g.Pure.Equal(g.Gross.Mul(g.Purity)))
				}
			}
		}
	})

	t.Run("custom ratio", func(t *testing.T) {
		g := units.PureGoldGrams(d("10"), units.Gram, units.Custom, 22, decimal.NewNullDecimal(d("0.999")))
		assert.Equal(t, "9.99", g.Pure.String())
	})
}

func TestLoadPurityTable(t *testing.T) {
	t.Run("overrides regional values", func(t *testing.T) {
		table, err := units.LoadPurityTable(strings.NewReader(`
standards:
  - id: india
    label: Test
    region: Test
    purity:
      22: "0.92"
`))
		require.NoError(t, err)
		assert.Equal(t, "0.92", table.Ratio(units.India, 22, noCustom).String())
		assert.Equal(t, units.DefaultKarat, table.DefaultKarat(units.India))

		// Karats missing from a standard use the formula.
		assert.Equal(t, "1", table.Ratio(units.India, 24, noCustom).String())
	})

	t.Run("rejects ratios above one", func(t *testing.T) {
		_, err := units.LoadPurityTable(strings.NewReader(`
standards:
  - id: india
    purity:
      22: "1.2"
`))
		assert.ErrorIs(t, err, units.ErrInvalidPurityTable)
	})

	t.Run("rejects custom id", func(t *testing.T) {
		_, err := units.LoadPurityTable(strings.NewReader(`
standards:
  - id: custom
    purity:
      22: "0.9"
`))
		assert.ErrorIs(t, err, units.ErrInvalidPurityTable)
	})

	t.Run("rejects empty file", func(t *testing.T) {
		_, err := units.LoadPurityTable(strings.NewReader("standards: []"))
		assert.ErrorIs(t, err, units.ErrInvalidPurityTable)
	})
}

func TestDefaultKarat(t *testing.T) {
	table := units.DefaultPurityTable()
	assert.Equal(t, 22, table.DefaultKarat(units.India))
	assert.Equal(t, 21, table.DefaultKarat(units.MiddleEast))
	assert.Equal(t, 24, table.DefaultKarat(units.HongKong))
	assert.Equal(t, 22, table.DefaultKarat(units.Custom))
}

func TestParsePuritySource(t *testing.T) {
	src, err := units.ParsePuritySource("Middle-East")
	require.NoError(t, err)
	assert.Equal(t, units.MiddleEast, src)

	_, err = units.ParsePuritySource("atlantis")
	assert.ErrorIs(t, err, units.ErrUnknownPuritySource)
}
