package provider

import (
	"context"
	"errors"
	"fmt"
)

// Chain tries each source in order and returns the first snapshot that
// loads. Sources are not retried.
type Chain []Source

// Snapshot implements Source.
func (ch Chain) Snapshot(ctx context.Context) (*Snapshot, error) {
	var errs []error
	for _, s := range ch {
		snap, err := s.Snapshot(ctx)
		if err == nil {
			return snap, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		errs = append(errs, fmt.Errorf("%s: %w", s.Metadata().Name, err))
	}
	return nil, errors.Join(append([]error{ErrSnapshotUnavailable}, errs...)...)
}

// Metadata implements Source.
func (ch Chain) Metadata() Metadata {
	m := Metadata{Name: "chain", IsActive: len(ch) > 0}
	if len(ch) > 0 {
		m.Source = ch[0].Metadata().Source
	}
	return m
}
