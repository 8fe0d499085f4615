package units_test

import (
	"testing"

	"github.com/amirasaad/zakat/pkg/units"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGramsPerUnit(t *testing.T) {
	tests := []struct {
		unit     units.Unit
		expected string
	}{
		{units.Gram, "1"},
		{units.Sovereign, "7.988"},
		{units.Tola, "11.664"},
		{units.Baht, "15.244"},
		{units.Tael, "37.799"},
		{units.Ratti, "0.182"},
		{units.Ounce, "31.1035"},
	}

	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			assert.True(t, d(tt.expected).Equal(units.GramsPerUnit(tt.unit)),
				"GramsPerUnit(%s) = %s", tt.unit, units.GramsPerUnit(tt.unit))
		})
	}
}

func TestToGrams(t *testing.T) {
	t.Run("15 sovereigns", func(t *testing.T) {
		assert.Equal(t, "119.82", units.ToGrams(d("15"), units.Sovereign).String())
	})

	t.Run("10 tolas", func(t *testing.T) {
		assert.Equal(t, "116.64", units.ToGrams(d("10"), units.Tola).String())
	})

	t.Run("grams stay grams", func(t *testing.T) {
		assert.Equal(t, "100", units.ToGrams(d("100"), units.Gram).String())
	})

	t.Run("unknown unit converts to zero", func(t *testing.T) {
		assert.True(t, units.ToGrams(d("10"), units.Unit("stone")).IsZero())
	})
}

func TestParseUnit(t *testing.T) {
	u, err := units.ParseUnit(" Tola ")
	require.NoError(t, err)
	assert.Equal(t, units.Tola, u)
	assert.True(t, u.Valid())

	_, err = units.ParseUnit("stone")
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
	assert.False(t, units.Unit("stone").Valid())
}

func TestUnits_ListsCatalogInOrder(t *testing.T) {
	list := units.Units()
	require.Len(t, list, 7)
	assert.Equal(t, units.Gram, list[0].Unit)
	assert.Equal(t, units.Ounce, list[6].Unit)

	// Returned slice is a copy.
	list[0].Label = "changed"
	info, ok := units.Lookup(units.Gram)
	require.True(t, ok)
	assert.Equal(t, "Grams (International)", info.Label)
}

func TestNisabGrams(t *testing.T) {
	assert.Equal(t, "612.36", units.SilverNisabGrams.String())
	assert.Equal(t, "87.48", units.GoldNisabGrams.String())
}
