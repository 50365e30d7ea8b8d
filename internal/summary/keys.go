package summary

// publishedParams are the parameters published as (lower, median, upper)
// triples, GWOSC order.
var publishedParams = []string{
	"mass_1_source",
	"mass_2_source",
	"chirp_mass_source",
	"total_mass_source",
	"chirp_mass",
	"total_mass",
	"mass_ratio",
	"luminosity_distance",
	"redshift",
	"chi_eff",
}

// publishedScalars are published as single values. Our parsers never produce
// them, so they appear as null, which keeps the record schema identical to
// catalogs whose pipelines do fill them in.
var publishedScalars = []string{
	"GPS",
	"far",
	"p_astro",
	"network_matched_filter_snr",
}

// DefaultPublishedKeys returns the fixed GWOSC-compatible key set retained in
// every summary record (before the commonName/version metadata).
func DefaultPublishedKeys() []string {
	keys := make([]string, 0, 3*len(publishedParams)+len(publishedScalars))
	for _, p := range publishedParams {
		keys = append(keys, p+"_lower", p, p+"_upper")
	}
	return append(keys, publishedScalars...)
}
