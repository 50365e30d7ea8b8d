package parser

import (
	"strings"
	"testing"

	"github.com/astrokat/gwcat/internal/table"
)

func TestEventName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"GW150914_GWTC-1.hdf5", "GW150914"},
		{"/data/lvc/GW170817.h5", "GW170817"},
		{"GW170729_posterior.hdf5", "GW170729"},
		{"GW190521.csv", "GW190521"},
		{"GW190814_samples.csv", "GW190814"},
		{"GW150914", "GW150914"},
	}
	for _, tc := range cases {
		if got := EventName(tc.path); got != tc.want {
			t.Errorf("EventName(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

// stubParser is a minimal Parser for registry tests.
type stubParser struct {
	name string
}

func (s *stubParser) Name() string                                     { return s.name }
func (s *stubParser) Catalog() string                                  { return "STUB" }
func (s *stubParser) SearchParameters() []string                       { return nil }
func (s *stubParser) Load(string) (*table.Table, error)                { return table.New(), nil }
func (s *stubParser) Standardize(t *table.Table) (*table.Table, error) { return t, nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubParser{name: "gwtc1"})
	r.Register(&stubParser{name: "flatcsv"})

	p, err := r.Get("gwtc1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if p.Name() != "gwtc1" {
		t.Errorf("Get returned %q", p.Name())
	}

	if _, err := r.Get("nope"); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("Get(nope) error = %v, want mention of format", err)
	}

	got := r.Formats()
	want := []string{"flatcsv", "gwtc1"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Formats = %v, want %v", got, want)
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubParser{name: "gwtc1"})
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Register did not panic")
		}
	}()
	r.Register(&stubParser{name: "gwtc1"})
}
