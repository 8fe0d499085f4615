package currency_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMetaCSV_Embedded(t *testing.T) {
	metas, err := currency.LoadMetaCSV("")
	require.NoError(t, err)
	require.NotEmpty(t, metas)

	seen := make(map[string]bool, len(metas))
	for _, m := range metas {
		assert.Len(t, m.Code, 3, "code %q", m.Code)
		assert.NotEmpty(t, m.Name, m.Code)
		assert.NotEmpty(t, m.Symbol, m.Code)
		assert.False(t, seen[m.Code], "duplicate %s", m.Code)
		seen[m.Code] = true
	}
	for _, code := range []string{"USD", "SGD", "INR", "EUR", "GBP", "AED", "PKR", "BDT", "MYR"} {
		assert.True(t, seen[code], code)
	}
}

func TestLoadMetaCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currencies.csv")
	content := `code,name,symbol,decimals,active
USD,US Dollar,$,2,true
KWD,Kuwaiti Dinar,KD,3,true
XXX,Retired,X,bad,false
short,row`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	metas, err := currency.LoadMetaCSV(path)
	require.NoError(t, err)
	require.Len(t, metas, 3)

	assert.Equal(t, currency.Meta{Code: "USD", Name: "US Dollar", Symbol: "$", Decimals: 2, Active: true}, metas[0])
	assert.Equal(t, 3, metas[1].Decimals)
	assert.Equal(t, currency.DefaultDecimals, metas[2].Decimals)
	assert.False(t, metas[2].Active)
}

func TestLoadMetaCSV_Errors(t *testing.T) {
	_, err := currency.LoadMetaCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	_, err = currency.ParseMetaCSV(strings.NewReader(""))
	require.ErrorIs(t, err, currency.ErrInvalidMetaCSV)

	_, err = currency.ParseMetaCSV(strings.NewReader("code,name\nUSD,US Dollar\n"))
	require.ErrorIs(t, err, currency.ErrInvalidMetaCSV)
}

func TestRegistry(t *testing.T) {
	r := currency.NewRegistry(
		currency.Meta{Code: "usd", Name: "US Dollar", Symbol: "$", Decimals: 2, Active: true},
		currency.Meta{Code: "SGD", Name: "Singapore Dollar", Decimals: 2, Active: true},
		currency.Meta{Code: "ZWL", Name: "Zimbabwe Dollar", Decimals: 2, Active: false},
	)

	assert.Equal(t, 3, r.Count())

	usd, err := r.Get("USD")
	require.NoError(t, err)
	assert.Equal(t, "$", usd.Symbol)

	sgd, err := r.Get(" sgd ")
	require.NoError(t, err)
	assert.Equal(t, "SGD", sgd.Symbol, "symbol falls back to the code")

	_, err = r.Get("JPY")
	require.ErrorIs(t, err, currency.ErrUnsupportedCurrency)

	assert.True(t, r.IsSupported("usd"))
	assert.False(t, r.IsSupported("ZWL"), "inactive currencies are not supported")
	assert.False(t, r.IsSupported("JPY"))

	list := r.ListSupported()
	require.Len(t, list, 2)
	assert.Equal(t, "SGD", list[0].Code)
	assert.Equal(t, "USD", list[1].Code)

	assert.True(t, r.Unregister("usd"))
	assert.False(t, r.Unregister("usd"))
	assert.Equal(t, 2, r.Count())
}

func TestDefaultRegistry(t *testing.T) {
	assert.True(t, currency.IsSupported(currency.DefaultCurrency))
	assert.True(t, currency.IsSupported("sgd"))
	assert.Positive(t, currency.Count())

	inr, err := currency.Get("INR")
	require.NoError(t, err)
	assert.Equal(t, "Indian Rupee", inr.Name)

	jpy, err := currency.Get("JPY")
	require.NoError(t, err)
	assert.Equal(t, 0, jpy.Decimals)

	assert.Len(t, currency.ListSupported(), currency.Count())
}
