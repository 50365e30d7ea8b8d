// Package flatcsv parses posterior tables exported as flat CSV: one file per
// event, a header row of parameter names, one posterior draw per row.
package flatcsv

import (
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/astrokat/gwcat/internal/cosmology"
	"github.com/astrokat/gwcat/internal/parser"
	"github.com/astrokat/gwcat/internal/standardize"
	"github.com/astrokat/gwcat/internal/table"
)

// searchParams are the header names required from every CSV export.
var searchParams = []string{
	"luminosity_distance",
	"mass_1",
	"mass_2",
	"ra",
	"dec",
	"a_1",
	"a_2",
	"cos_tilt_1",
	"cos_tilt_2",
}

// Parser reads and standardizes flat CSV posterior exports.
type Parser struct {
	std *standardize.Standardizer
}

// New creates a flat-CSV parser using the given cosmology and orientation
// defaults.
func New(cosmo *cosmology.FlatLCDM, defaults standardize.Defaults) *Parser {
	return &Parser{
		std: standardize.New(standardize.Mapping{
			Distance: "luminosity_distance",
			Mass1:    "mass_1",
			Mass2:    "mass_2",
			RA:       "ra",
			Dec:      "dec",
			Spin1:    "a_1",
			Spin2:    "a_2",
			CosTilt1: "cos_tilt_1",
			CosTilt2: "cos_tilt_2",
		}, cosmo, defaults),
	}
}

func (p *Parser) Name() string    { return "flatcsv" }
func (p *Parser) Catalog() string { return "FLAT-CSV" }

func (p *Parser) SearchParameters() []string {
	return slices.Clone(searchParams)
}

// Load reads exactly the search parameters from the CSV, ignoring any extra
// columns the export carries.
func (p *Parser) Load(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &parser.FileFormatError{Path: path, Detail: err.Error()}
	}
	if len(rows) == 0 {
		return nil, &parser.FileFormatError{Path: path, Detail: "no header row"}
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}

	t := table.New()
	for _, name := range searchParams {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w", path, &table.MissingColumnError{Column: name})
		}
		col := make([]float64, 0, len(rows)-1)
		for line, row := range rows[1:] {
			v, err := strconv.ParseFloat(row[idx], 64)
			if err != nil {
				return nil, &parser.FileFormatError{
					Path:   path,
					Detail: fmt.Sprintf("row %d, column %q: %v", line+2, name, err),
				}
			}
			col = append(col, v)
		}
		if err := t.Set(name, col); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return t, nil
}

func (p *Parser) Standardize(raw *table.Table) (*table.Table, error) {
	return p.std.Standardize(raw)
}
