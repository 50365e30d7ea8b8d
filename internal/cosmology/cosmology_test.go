package cosmology

import (
	"errors"
	"math"
	"testing"
)

func TestRedshiftMonotonic(t *testing.T) {
	m := Planck15()
	prev := -1.0
	for dl := 100.0; dl <= 5000; dl += 100 {
		z, err := m.Redshift(dl)
		if err != nil {
			t.Fatalf("Redshift(%v) error: %v", dl, err)
		}
		if z <= prev {
			t.Fatalf("Redshift(%v) = %v, not greater than previous %v", dl, z, prev)
		}
		prev = z
	}
}

func TestRedshiftRoundTrip(t *testing.T) {
	m := Planck15()
	for _, z := range []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5} {
		dl := m.LuminosityDistance(z)
		got, err := m.Redshift(dl)
		if err != nil {
			t.Fatalf("Redshift(D_L(%v)) error: %v", z, err)
		}
		if math.Abs(got-z) > 1e-6 {
			t.Errorf("round trip z=%v: got %v", z, got)
		}
	}
}

func TestRedshiftNearbyValue(t *testing.T) {
	// At 100 Mpc the Hubble-law estimate is z ≈ H0*d/c ≈ 0.0226.
	m := Planck15()
	z, err := m.Redshift(100)
	if err != nil {
		t.Fatalf("Redshift error: %v", err)
	}
	if z < 0.02 || z > 0.03 {
		t.Errorf("Redshift(100 Mpc) = %v, want ~0.022", z)
	}
}

func TestRedshiftDomain(t *testing.T) {
	m := Planck15()

	z, err := m.Redshift(0)
	if err != nil || z != 0 {
		t.Errorf("Redshift(0) = %v, %v; want 0, nil", z, err)
	}

	for _, dl := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := m.Redshift(dl)
		var inv *InversionError
		if !errors.As(err, &inv) {
			t.Errorf("Redshift(%v) error = %v, want InversionError", dl, err)
		}
	}
}

func TestRedshiftColumn(t *testing.T) {
	m := Planck15()
	col, err := m.RedshiftColumn([]float64{100, 200, 300})
	if err != nil {
		t.Fatalf("RedshiftColumn error: %v", err)
	}
	if len(col) != 3 || col[0] >= col[1] || col[1] >= col[2] {
		t.Errorf("RedshiftColumn = %v, want 3 increasing values", col)
	}

	if _, err := m.RedshiftColumn([]float64{100, -5}); err == nil {
		t.Fatal("RedshiftColumn with negative distance: want error")
	}
}
