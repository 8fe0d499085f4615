package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirasaad/zakat/pkg/currency"
	"github.com/amirasaad/zakat/pkg/zakat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSnapshotYAML = `prices:
  gold_per_gram_usd: "90"
  silver_per_gram_usd: "1.10"
  timestamp: 2026-02-01T00:00:00Z
rates:
  timestamp: 2026-02-02T00:00:00Z
  rates:
    USD: "1"
    SGD: "1.34"
crypto:
  bitcoin: "65000"
`

// countingSource counts calls and optionally fails.
type countingSource struct {
	calls atomic.Int32
	err   error
	snap  Snapshot
	name  string
}

func (s *countingSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.snap.clone(), nil
}

func (s *countingSource) Metadata() Metadata {
	return Metadata{Name: s.name, Source: currency.RateSourceAPI, IsActive: true}
}

func validSnapshot() Snapshot {
	return Snapshot{
		Prices: zakat.PriceSnapshot{GoldPerGramUSD: "85.50", SilverPerGramUSD: "0.95"},
		Rates:  zakat.ExchangeRateSnapshot{Rates: currency.Rates{"USD": "1", "SGD": "1.35"}},
	}
}

func TestLoadSnapshot(t *testing.T) {
	s, err := LoadSnapshot(strings.NewReader(testSnapshotYAML))
	require.NoError(t, err)

	assert.Equal(t, "90", s.Prices.GoldPerGramUSD)
	assert.Equal(t, "1.10", s.Prices.SilverPerGramUSD)
	assert.Equal(t, "1.34", s.Rates.Rates["SGD"])
	assert.Equal(t, currency.RateSourceCommitted, s.Rates.Source)
	assert.Equal(t, "65000", s.Crypto["bitcoin"])
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), s.Timestamp().UTC())
}

func TestLoadSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"not yaml", "prices: [1, 2"},
		{"no metals", "rates:\n  rates:\n    USD: \"1\"\n"},
		{"no rates", "prices:\n  gold_per_gram_usd: \"1\"\n  silver_per_gram_usd: \"1\"\n"},
		{
			"no usd pivot",
			"prices:\n  gold_per_gram_usd: \"1\"\n  silver_per_gram_usd: \"1\"\nrates:\n  rates:\n    SGD: \"1.35\"\n",
		},
		{
			"bad source",
			"prices:\n  gold_per_gram_usd: \"1\"\n  silver_per_gram_usd: \"1\"\nrates:\n  source: oracle\n  rates:\n    USD: \"1\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSnapshot(strings.NewReader(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}

func TestCommitted(t *testing.T) {
	ctx := context.Background()

	t.Run("embedded", func(t *testing.T) {
		c, err := NewCommitted("")
		require.NoError(t, err)

		s, err := c.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1", s.Rates.Rates["USD"])
		assert.NotEmpty(t, s.Rates.Rates["SGD"])
		assert.NotEmpty(t, s.Rates.Rates["INR"])
		assert.NotEmpty(t, s.Prices.GoldPerGramUSD)
		assert.Equal(t, currency.RateSourceCommitted, c.Metadata().Source)

		for code := range s.Rates.Rates {
			assert.True(t, currency.IsSupported(code), "snapshot rate for unknown currency %s", code)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snapshot.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testSnapshotYAML), 0o600))

		c, err := NewCommitted(path)
		require.NoError(t, err)
		s, err := c.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, "90", s.Prices.GoldPerGramUSD)
		assert.Contains(t, c.Metadata().Name, path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCommitted(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("callers cannot mutate the snapshot", func(t *testing.T) {
		c, err := NewCommitted("")
		require.NoError(t, err)
		s, err := c.Snapshot(ctx)
		require.NoError(t, err)
		s.Rates.Rates["SGD"] = "999"
		s.Crypto["bitcoin"] = "1"

		again, err := c.Snapshot(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, "999", again.Rates.Rates["SGD"])
		assert.NotEqual(t, "1", again.Crypto["bitcoin"])
	})

	t.Run("cancelled context", func(t *testing.T) {
		c, err := NewCommitted("")
		require.NoError(t, err)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err = c.Snapshot(cctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStatic(t *testing.T) {
	s, err := NewStatic(validSnapshot())
	require.NoError(t, err)

	got, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, currency.RateSourceManual, got.Rates.Source)
	assert.Equal(t, "manual", s.Metadata().Name)

	_, err = NewStatic(Snapshot{})
	require.ErrorIs(t, err, ErrInvalidSnapshot)

	noPivot := validSnapshot()
	noPivot.Rates.Rates = currency.Rates{"SGD": "1.35", "INR": "83.33"}
	_, err = NewStatic(noPivot)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	next := &countingSource{snap: validSnapshot(), name: "live"}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	c := NewCached(next, time.Hour)
	c.now = func() time.Time { return now }

	first, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, first.Rates.Source, "a miss passes the source through")

	hit, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, currency.RateSourceCached, hit.Rates.Source)
	assert.Equal(t, int32(1), next.calls.Load())

	now = now.Add(2 * time.Hour)
	_, err = c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calls.Load(), "expired entries are refetched")

	c.Clear()
	_, err = c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(3), next.calls.Load())

	assert.Equal(t, "cached:live", c.Metadata().Name)
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	boom := errors.New("boom")
	next := &countingSource{err: boom, name: "live"}
	c := NewCached(next, time.Hour)

	_, err := c.Snapshot(context.Background())
	require.ErrorIs(t, err, boom)
	_, err = c.Snapshot(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	down := &countingSource{err: ErrProviderUnavailable, name: "live"}
	committed, err := NewCommitted("")
	require.NoError(t, err)

	s, err := Chain{down, committed}.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, currency.RateSourceCommitted, s.Rates.Source)
	assert.Equal(t, int32(1), down.calls.Load())

	_, err = Chain{down, down}.Snapshot(ctx)
	require.ErrorIs(t, err, ErrSnapshotUnavailable)
	require.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = Chain{}.Snapshot(ctx)
	require.ErrorIs(t, err, ErrSnapshotUnavailable)
	assert.False(t, Chain{}.Metadata().IsActive)
}

func TestIsStale(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsStale(now.Add(-time.Hour), DefaultMaxAge, now))
	assert.False(t, IsStale(now.Add(-DefaultMaxAge), DefaultMaxAge, now))
	assert.True(t, IsStale(now.Add(-DefaultMaxAge-time.Second), DefaultMaxAge, now))
	assert.True(t, IsStale(time.Time{}, DefaultMaxAge, now))
}

func TestFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	f := NewFile(path)

	_, err := f.Snapshot(ctx)
	require.ErrorIs(t, err, ErrProviderUnavailable)

	require.NoError(t, os.WriteFile(path, []byte(testSnapshotYAML), 0o600))
	s, err := f.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "90", s.Prices.GoldPerGramUSD)

	updated := strings.Replace(testSnapshotYAML, `"90"`, `"91"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))
	s, err = f.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "91", s.Prices.GoldPerGramUSD, "the file is read on every call")

	require.NoError(t, os.WriteFile(path, []byte("prices: [1"), 0o600))
	_, err = f.Snapshot(ctx)
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Equal(t, "file:"+path, f.Metadata().Name)
}

func TestChain_FileFallsBackToEmbedded(t *testing.T) {
	committed, err := NewCommitted("")
	require.NoError(t, err)
	src := NewCached(Chain{NewFile(filepath.Join(t.TempDir(), "missing.yaml")), committed}, time.Minute)

	s, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, currency.RateSourceCommitted, s.Rates.Source)
}
