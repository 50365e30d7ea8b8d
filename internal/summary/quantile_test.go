package summary

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseInterval(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "90%", want: 0.9},
		{in: "0.9", want: 0.9},
		{in: "50%", want: 0.5},
		{in: " 68% ", want: 0.68},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "120%", wantErr: true},
		{in: "0", wantErr: true},
		{in: "1", wantErr: true},
	}
	for _, tc := range cases {
		iv, err := ParseInterval(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseInterval(%q): want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseInterval(%q) error: %v", tc.in, err)
			continue
		}
		if iv.Width != tc.want {
			t.Errorf("ParseInterval(%q) = %v, want %v", tc.in, iv.Width, tc.want)
		}
	}
}

func TestSummarizeOrdering(t *testing.T) {
	iv := Interval{Width: 0.9}
	samples := []float64{4, 1, 9, 2, 7, 3, 8, 5, 6, 0}
	q, err := iv.Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if !(q.Lower <= q.Median && q.Median <= q.Upper) {
		t.Errorf("quantiles out of order: %+v", q)
	}
}

func TestSummarizeKnown(t *testing.T) {
	iv := Interval{Width: 0.9}
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = float64(i + 1) // 1..100
	}
	q, err := iv.Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if q.Median != 50.5 {
		t.Errorf("median = %v, want 50.5", q.Median)
	}
	if q.Lower < 4 || q.Lower > 6 {
		t.Errorf("lower = %v, want ~5", q.Lower)
	}
	if q.Upper < 95 || q.Upper > 96 {
		t.Errorf("upper = %v, want ~95.5", q.Upper)
	}
}

func TestSummarizeSmallSample(t *testing.T) {
	q, err := (Interval{Width: 0.9}).Summarize([]float64{100, 200, 300})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if q.Lower != 100 {
		t.Errorf("lower = %v, want 100 (clamped to the minimum)", q.Lower)
	}
	if q.Median != 200 {
		t.Errorf("median = %v, want 200", q.Median)
	}
	if !(q.Lower <= q.Median && q.Median <= q.Upper) {
		t.Errorf("quantiles out of order: %+v", q)
	}
	if q.Upper > 300 {
		t.Errorf("upper = %v, beyond the sample maximum", q.Upper)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Interval{Width: 0.9}.Summarize(nil)
	if !errors.Is(err, ErrEmptySample) {
		t.Fatalf("error = %v, want ErrEmptySample", err)
	}
}

func TestSummarizeSingle(t *testing.T) {
	q, err := Interval{Width: 0.9}.Summarize([]float64{3.14})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if q.Lower != 3.14 || q.Median != 3.14 || q.Upper != 3.14 {
		t.Errorf("single-valued column: got %+v, want all 3.14", q)
	}
}

func TestSummarizeDoesNotReorder(t *testing.T) {
	samples := []float64{5, 1, 4, 2, 3}
	want := []float64{5, 1, 4, 2, 3}
	if _, err := (Interval{Width: 0.9}).Summarize(samples); err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if diff := cmp.Diff(want, samples); diff != "" {
		t.Errorf("input reordered (-want +got):\n%s", diff)
	}
}
