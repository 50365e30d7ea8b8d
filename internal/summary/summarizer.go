package summary

import (
	"fmt"

	"github.com/astrokat/gwcat/internal/cosmology"
	"github.com/astrokat/gwcat/internal/table"
)

// SchemaVersion is the current summary record schema version.
const SchemaVersion = 1

// statistic positions of a summarized parameter, as key suffixes. The bare
// suffix is the median.
var positions = []string{"_lower", "", "_upper"}

// derivedMasses are the detector-frame figures whose source-frame
// counterparts are derived from the summarized values.
var derivedMasses = []string{"mass_1", "mass_2", "chirp_mass", "total_mass"}

// Record is one event's published summary: parameter name to scalar, with
// absent published parameters recorded as nil.
type Record map[string]any

// Summarizer collapses a standardized sample table into a Record.
type Summarizer struct {
	interval Interval
	cosmo    *cosmology.FlatLCDM
	keys     []string
	version  int
}

// New creates a Summarizer publishing exactly the given key set.
func New(iv Interval, cosmo *cosmology.FlatLCDM, keys []string, version int) *Summarizer {
	return &Summarizer{interval: iv, cosmo: cosmo, keys: keys, version: version}
}

// Summarize reduces every column of t to its quantile triple, derives the
// secondary quantities (redshift and source-frame masses) from the
// summarized primaries at each statistic position, and filters the result
// down to the published key set.
//
// Deriving from the summarized values rather than per draw is exact only for
// the median of a monotonic transform; for the credible bounds it is the
// approximation the published catalogs use, and is kept deliberately.
func (s *Summarizer) Summarize(eventName string, t *table.Table) (Record, error) {
	vals := make(map[string]float64, 3*len(t.Names()))
	for _, name := range t.Names() {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		q, err := s.interval.Summarize(col)
		if err != nil {
			return nil, fmt.Errorf("summarize column %q: %w", name, err)
		}
		vals[name+"_lower"] = q.Lower
		vals[name] = q.Median
		vals[name+"_upper"] = q.Upper
	}

	for _, pos := range positions {
		dl, ok := vals["luminosity_distance"+pos]
		if !ok {
			return nil, &MissingParameterError{Parameter: "luminosity_distance" + pos}
		}
		z, err := s.cosmo.Redshift(dl)
		if err != nil {
			return nil, fmt.Errorf("derive redshift%s: %w", pos, err)
		}
		vals["redshift"+pos] = z
		for _, mass := range derivedMasses {
			if m, ok := vals[mass+pos]; ok {
				vals[mass+"_source"+pos] = m / (1 + z)
			}
		}
	}

	rec := make(Record, len(s.keys)+2)
	for _, k := range s.keys {
		if v, ok := vals[k]; ok {
			rec[k] = v
		} else {
			rec[k] = nil
		}
	}
	rec["commonName"] = eventName
	rec["version"] = s.version
	return rec, nil
}

// MissingParameterError reports a summarized parameter required by a
// secondary-quantity formula that is absent from the primary summary.
type MissingParameterError struct {
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing summarized parameter %q", e.Parameter)
}
