// Package gwtc1 parses LVC GWTC-1 posterior releases: one HDF5 file per
// event holding a single group with one float64 dataset per parameter.
package gwtc1

import (
	"fmt"
	"slices"

	"gonum.org/v1/hdf5"

	"github.com/astrokat/gwcat/internal/cosmology"
	"github.com/astrokat/gwcat/internal/parser"
	"github.com/astrokat/gwcat/internal/standardize"
	"github.com/astrokat/gwcat/internal/table"
)

// defaultGroup is the posterior group name in the public GWTC-1 release.
const defaultGroup = "Overall_posterior"

// searchParams are the raw columns required from every GWTC-1 file, in the
// order they are loaded.
var searchParams = []string{
	"luminosity_distance_Mpc",
	"m1_detector_frame_Msun",
	"m2_detector_frame_Msun",
	"right_ascension",
	"declination",
	"costheta_jn",
	"spin1",
	"costilt1",
	"spin2",
	"costilt2",
}

// Parser reads and standardizes GWTC-1 posterior files.
type Parser struct {
	group string
	std   *standardize.Standardizer
}

// New creates a GWTC-1 parser using the given cosmology and orientation
// defaults.
func New(cosmo *cosmology.FlatLCDM, defaults standardize.Defaults) *Parser {
	return &Parser{
		group: defaultGroup,
		std: standardize.New(standardize.Mapping{
			Distance: "luminosity_distance_Mpc",
			Mass1:    "m1_detector_frame_Msun",
			Mass2:    "m2_detector_frame_Msun",
			RA:       "right_ascension",
			Dec:      "declination",
			Spin1:    "spin1",
			Spin2:    "spin2",
			CosTilt1: "costilt1",
			CosTilt2: "costilt2",
		}, cosmo, defaults),
	}
}

func (p *Parser) Name() string    { return "gwtc1" }
func (p *Parser) Catalog() string { return "LVC-GWTC1" }

func (p *Parser) SearchParameters() []string {
	return slices.Clone(searchParams)
}

// Load reads exactly the search parameters from the posterior group.
func (p *Parser) Load(path string) (*table.Table, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := f.OpenGroup(p.group)
	if err != nil {
		return nil, &parser.FileFormatError{Path: path, Detail: fmt.Sprintf("posterior group %q not found", p.group)}
	}
	defer g.Close()

	t := table.New()
	for _, name := range searchParams {
		col, err := readDataset(g, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
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

func readDataset(g *hdf5.Group, name string) ([]float64, error) {
	ds, err := g.OpenDataset(name)
	if err != nil {
		return nil, &table.MissingColumnError{Column: name}
	}
	defer ds.Close()

	space := ds.Space()
	defer space.Close()
	n := space.SimpleExtentNPoints()

	col := make([]float64, n)
	if err := ds.Read(&col); err != nil {
		return nil, fmt.Errorf("read dataset %q: %w", name, err)
	}
	return col, nil
}
