package provider

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/zakat/pkg/currency"
	"gopkg.in/yaml.v3"
)

//go:embed snapshot.yaml
var committedYAML []byte

// Committed serves a snapshot read once from a YAML file.
type Committed struct {
	name     string
	snapshot *Snapshot
}

// LoadSnapshot parses a YAML snapshot.
func LoadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Rates.Source == "" {
		s.Rates.Source = currency.RateSourceCommitted
	}
	return &s, nil
}

// NewCommitted loads the snapshot at path, or the embedded snapshot when
// path is empty.
func NewCommitted(path string) (*Committed, error) {
	if path == "" {
		s, err := LoadSnapshot(bytes.NewReader(committedYAML))
		if err != nil {
			return nil, fmt.Errorf("embedded snapshot: %w", err)
		}
		return &Committed{name: "embedded", snapshot: s}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	s, err := LoadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Committed{name: path, snapshot: s}, nil
}

// Snapshot implements Source.
func (c *Committed) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.snapshot.clone(), nil
}

// Metadata implements Source.
func (c *Committed) Metadata() Metadata {
	return Metadata{Name: "committed:" + c.name, Source: currency.RateSourceCommitted, IsActive: true}
}

// Static serves a snapshot supplied by the caller, such as manually entered prices.
type Static struct {
	snapshot *Snapshot
}

// NewStatic wraps s. The snapshot is copied.
func NewStatic(s Snapshot) (*Static, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.Rates.Source = currency.RateSourceManual
	return &Static{snapshot: s.clone()}, nil
}

// Snapshot implements Source.
func (m *Static) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.snapshot.clone(), nil
}

// Metadata implements Source.
func (m *Static) Metadata() Metadata {
	return Metadata{Name: "manual", Source: currency.RateSourceManual, IsActive: true}
}

// File re-reads a YAML snapshot on every call so the file can be replaced
// while the process runs. Put a Cached in front of it to bound disk reads.
type File struct {
	path string
}

// NewFile returns a source reading path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Snapshot implements Source.
func (f *File) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	defer func() {
		_ = fh.Close()
	}()

	s, err := LoadSnapshot(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return s, nil
}

// Metadata implements Source.
func (f *File) Metadata() Metadata {
	return Metadata{Name: "file:" + f.path, Source: currency.RateSourceCommitted, IsActive: true}
}
