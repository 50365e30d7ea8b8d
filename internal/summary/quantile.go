// Package summary reduces posterior sample tables to the compact summary
// records published in the catalog: a (lower, median, upper) triple per
// parameter under a central credible-interval convention, plus secondary
// quantities derived from the summarized primaries.
package summary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// ErrEmptySample is returned when a quantile summary is requested on a
// zero-length column.
var ErrEmptySample = errors.New("empty sample column")

// Interval is a central credible-interval convention, e.g. Width 0.9 keeps
// 90% of the probability mass symmetric about the median.
type Interval struct {
	Width float64
}

// ParseInterval accepts "90%" or a bare fraction such as "0.9".
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return Interval{}, fmt.Errorf("parse interval %q: %w", s, err)
	}
	if strings.HasSuffix(s, "%") {
		v /= 100
	}
	if v <= 0 || v >= 1 {
		return Interval{}, fmt.Errorf("interval %q: width must be in (0, 1)", s)
	}
	return Interval{Width: v}, nil
}

// Quantiles is the summary of one sample column.
type Quantiles struct {
	Lower  float64
	Median float64
	Upper  float64
}

// Summarize reduces one column to its credible-interval bounds and median.
// The input is not reordered; a single-valued column degenerates to
// lower = median = upper.
func (iv Interval) Summarize(samples []float64) (Quantiles, error) {
	switch len(samples) {
	case 0:
		return Quantiles{}, ErrEmptySample
	case 1:
		v := samples[0]
		return Quantiles{Lower: v, Median: v, Upper: v}, nil
	}

	tail := (1 - iv.Width) / 2 * 100
	lower, err := tailPercentile(samples, tail)
	if err != nil {
		return Quantiles{}, fmt.Errorf("lower percentile: %w", err)
	}
	median, err := stats.Median(samples)
	if err != nil {
		return Quantiles{}, fmt.Errorf("median: %w", err)
	}
	upper, err := tailPercentile(samples, 100-tail)
	if err != nil {
		return Quantiles{}, fmt.Errorf("upper percentile: %w", err)
	}
	return Quantiles{Lower: lower, Median: median, Upper: upper}, nil
}

// tailPercentile evaluates one interval bound. stats.Percentile is undefined
// when the requested rank falls below the first draw, which a short column
// under a wide interval does; the bound then clamps to the sample minimum.
func tailPercentile(samples []float64, percent float64) (float64, error) {
	if percent/100*float64(len(samples)) < 1 {
		return stats.Min(samples)
	}
	return stats.Percentile(samples, percent)
}
