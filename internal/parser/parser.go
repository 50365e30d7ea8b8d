// Package parser defines the per-survey event parser capability and the
// event record it yields. Each upstream catalog stores posteriors in its own
// file layout and column naming; one Parser implementation per format hides
// that behind a uniform contract.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/astrokat/gwcat/internal/table"
)

// Parser is implemented once per source catalog format.
type Parser interface {
	// Name returns the format key the parser is registered under.
	Name() string
	// Catalog returns the originating survey label stored on each Record.
	Catalog() string
	// SearchParameters returns the ordered source column names required
	// from a raw posterior file.
	SearchParameters() []string
	// Load reads exactly the search parameters from one posterior file.
	Load(path string) (*table.Table, error)
	// Standardize maps a raw table onto the canonical parameter set.
	Standardize(raw *table.Table) (*table.Table, error)
}

// Record is one event's standardized samples plus provenance. Immutable once
// constructed; consumed exactly once by the summarizer and then discarded.
type Record struct {
	EventName  string
	Samples    *table.Table
	Datasource string
	Catalog    string
}

// Parse runs the full per-event pipeline for one file: load the raw table,
// standardize it, and attach provenance.
func Parse(p Parser, path string) (*Record, error) {
	raw, err := p.Load(path)
	if err != nil {
		return nil, err
	}
	std, err := p.Standardize(raw)
	if err != nil {
		return nil, err
	}
	return &Record{
		EventName:  EventName(path),
		Samples:    std,
		Datasource: path,
		Catalog:    p.Catalog(),
	}, nil
}

// EventName derives the catalog event identifier from a posterior file name:
// the extension is stripped (HDF5 spellings are cut at the first ".h") and
// any underscore suffix dropped, so "GW150914_GWTC-1.hdf5" → "GW150914".
func EventName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, ".h"); i >= 0 {
		base = base[:i]
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	name, _, _ := strings.Cut(base, "_")
	return name
}

// FileFormatError reports a posterior file whose internal layout does not
// match the format the parser expects.
type FileFormatError struct {
	Path   string
	Detail string
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("unexpected file format in %s: %s", e.Path, e.Detail)
}
