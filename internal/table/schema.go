package table

// Canonical is the catalog-wide parameter set every standardized table must
// expose, in canonical column order. Source formats that carry no information
// for a parameter still publish it as a constant-filled column.
var Canonical = []string{
	"mass_1",
	"mass_2",
	"mass_1_source",
	"mass_2_source",
	"mass_ratio",
	"luminosity_distance",
	"redshift",
	"ra",
	"dec",
	"a_1",
	"a_2",
	"cos_tilt_1",
	"cos_tilt_2",
	"spin_1z",
	"spin_2z",
	"chi_eff",
	"incl",
	"phi_12",
	"phi_jl",
	"geocent_time",
}

// ValidateCanonical checks that every canonical parameter resolves to a
// column. Performed once at the standardization boundary so downstream code
// can rely on checked names.
func ValidateCanonical(t *Table) error {
	for _, name := range Canonical {
		if !t.Has(name) {
			return &MissingColumnError{Column: name}
		}
	}
	return nil
}
