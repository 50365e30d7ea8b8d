// Package cosmology converts between luminosity distance and redshift under
// a fixed flat ΛCDM model. The forward map D_L(z) is evaluated by
// Gauss-Legendre quadrature of the inverse Hubble function and inverted by
// bisection, which is safe because D_L is strictly increasing in z.
package cosmology

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// speedOfLight in km/s.
const speedOfLight = 299792.458

const (
	// quadNodes is the Gauss-Legendre node count for the comoving integral.
	quadNodes = 64

	// zCeiling bounds the bisection bracket; distances beyond D_L(zCeiling)
	// are treated as out of domain rather than searched further.
	zCeiling = 100.0

	bisectTol   = 1e-10
	bisectSteps = 200
)

// FlatLCDM is a flat ΛCDM cosmology (Ωk = 0, ΩΛ = 1 - Ωm).
type FlatLCDM struct {
	H0     float64 // Hubble constant, km/s/Mpc
	OmegaM float64 // matter density
}

// Planck15 returns the Planck 2015 TT+lowP+lensing+ext cosmology used for
// all catalog conversions.
func Planck15() *FlatLCDM {
	return &FlatLCDM{H0: 67.74, OmegaM: 0.3075}
}

// efunc is E(z) = H(z)/H0 for a flat universe.
func (m *FlatLCDM) efunc(z float64) float64 {
	zp := 1 + z
	return math.Sqrt(m.OmegaM*zp*zp*zp + (1 - m.OmegaM))
}

// hubbleDistance is c/H0 in Mpc.
func (m *FlatLCDM) hubbleDistance() float64 {
	return speedOfLight / m.H0
}

// comovingDistance returns D_C(z) in Mpc.
func (m *FlatLCDM) comovingDistance(z float64) float64 {
	if z <= 0 {
		return 0
	}
	integral := quad.Fixed(func(x float64) float64 {
		return 1 / m.efunc(x)
	}, 0, z, quadNodes, nil, 0)
	return m.hubbleDistance() * integral
}

// LuminosityDistance returns D_L(z) in Mpc.
func (m *FlatLCDM) LuminosityDistance(z float64) float64 {
	return (1 + z) * m.comovingDistance(z)
}

// Redshift inverts LuminosityDistance for a distance in Mpc.
func (m *FlatLCDM) Redshift(dl float64) (float64, error) {
	if dl < 0 || math.IsNaN(dl) || math.IsInf(dl, 0) {
		return 0, &InversionError{Distance: dl, Reason: "distance out of domain"}
	}
	if dl == 0 {
		return 0, nil
	}

	// Grow the bracket until D_L(hi) exceeds the target.
	lo, hi := 0.0, 1.0
	for m.LuminosityDistance(hi) < dl {
		hi *= 2
		if hi > zCeiling {
			return 0, &InversionError{Distance: dl, Reason: "no bracketing redshift found"}
		}
	}

	for i := 0; i < bisectSteps && hi-lo > bisectTol; i++ {
		mid := 0.5 * (lo + hi)
		if m.LuminosityDistance(mid) < dl {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}

// RedshiftColumn inverts a whole column of luminosity distances, one redshift
// per draw.
func (m *FlatLCDM) RedshiftColumn(dl []float64) ([]float64, error) {
	out := make([]float64, len(dl))
	for i, d := range dl {
		z, err := m.Redshift(d)
		if err != nil {
			return nil, err
		}
		out[i] = z
	}
	return out, nil
}

// InversionError reports a failed distance-to-redshift inversion.
type InversionError struct {
	Distance float64
	Reason   string
}

func (e *InversionError) Error() string {
	return fmt.Sprintf("cannot invert luminosity distance %g Mpc: %s", e.Distance, e.Reason)
}
