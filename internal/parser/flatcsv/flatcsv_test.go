package flatcsv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/astrokat/gwcat/internal/cosmology"
	"github.com/astrokat/gwcat/internal/parser"
	"github.com/astrokat/gwcat/internal/standardize"
	"github.com/astrokat/gwcat/internal/table"
)

const validCSV = `luminosity_distance,mass_1,mass_2,ra,dec,a_1,a_2,cos_tilt_1,cos_tilt_2,snr
100,30,20,1.1,-0.5,0.5,0.3,0.9,-0.2,12
200,32,21,1.2,-0.4,0.6,0.2,0.8,0.0,13
300,34,22,1.3,-0.3,0.7,0.1,0.7,0.2,14
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newParser() *Parser {
	return New(cosmology.Planck15(), standardize.Defaults{})
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "GW190521.csv", validCSV)
	tab, err := newParser().Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if tab.Len() != 3 {
		t.Errorf("Len = %d, want 3", tab.Len())
	}
	// Only the search parameters are loaded; the extra snr column is not.
	if tab.Has("snr") {
		t.Error("extra column snr was loaded")
	}
	col, err := tab.Column("mass_1")
	if err != nil {
		t.Fatalf("Column error: %v", err)
	}
	if col[1] != 32 {
		t.Errorf("mass_1[1] = %v, want 32", col[1])
	}
}

func TestLoadMissingColumn(t *testing.T) {
	csv := "luminosity_distance,mass_1\n100,30\n"
	_, err := newParser().Load(writeFile(t, "bad.csv", csv))
	var missing *table.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingColumnError", err)
	}
	if missing.Column != "mass_2" {
		t.Errorf("missing column = %q, want mass_2", missing.Column)
	}
}

func TestLoadMalformedValue(t *testing.T) {
	csv := `luminosity_distance,mass_1,mass_2,ra,dec,a_1,a_2,cos_tilt_1,cos_tilt_2
100,thirty,20,1.1,-0.5,0.5,0.3,0.9,-0.2
`
	_, err := newParser().Load(writeFile(t, "bad.csv", csv))
	var format *parser.FileFormatError
	if !errors.As(err, &format) {
		t.Fatalf("error = %v, want FileFormatError", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := newParser().Load(writeFile(t, "empty.csv", ""))
	var format *parser.FileFormatError
	if !errors.As(err, &format) {
		t.Fatalf("error = %v, want FileFormatError", err)
	}
}

func TestParseEndToEnd(t *testing.T) {
	path := writeFile(t, "GW190521_samples.csv", validCSV)
	rec, err := parser.Parse(newParser(), path)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if rec.EventName != "GW190521" {
		t.Errorf("EventName = %q, want GW190521", rec.EventName)
	}
	if rec.Catalog != "FLAT-CSV" {
		t.Errorf("Catalog = %q", rec.Catalog)
	}
	if rec.Datasource != path {
		t.Errorf("Datasource = %q, want %q", rec.Datasource, path)
	}
	if err := table.ValidateCanonical(rec.Samples); err != nil {
		t.Errorf("standardized table incomplete: %v", err)
	}
}
