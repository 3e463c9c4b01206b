package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/fraudscan-cli/internal/parser"
)

// Detector flags anomalous data rows in a parsed table.
type Detector struct {
	rnd RandomSource
}

// NewDetector returns a Detector drawing noise from rnd. A nil rnd uses
// DefaultRandom.
func NewDetector(rnd RandomSource) *Detector {
	if rnd == nil {
		rnd = DefaultRandom()
	}
	return &Detector{rnd: rnd}
}

// Detection is the full output of one detector run.
type Detection struct {
	// NumericColumns are header indices inferred to hold numbers.
	NumericColumns []int
	// Stats holds one entry per numeric column, in column order.
	Stats []ColumnStats
	// FraudulentRows are 0-based data-row indices, ascending.
	FraudulentRows []int
	// NoiseRows is the subset of FraudulentRows flagged only by the random step.
	NoiseRows []int
}

// Detect returns the 0-based indices of anomalous data rows. Tables with fewer
// than two rows yield an empty set.
func (d *Detector) Detect(t parser.Table) []int {
	return d.Run(t).FraudulentRows
}

// Run performs numeric inference, column statistics and row classification.
func (d *Detector) Run(t parser.Table) Detection {
	det := Detection{FraudulentRows: []int{}}
	if len(t) < 2 {
		return det
	}
	det.NumericColumns = NumericColumns(t)
	det.Stats = ComputeColumnStats(t, det.NumericColumns)

	for i, row := range t.Rows() {
		if exceedsThreshold(row, det.Stats) {
			det.FraudulentRows = append(det.FraudulentRows, i)
			continue
		}
		if d.rnd.Float64() < NoiseProbability {
			det.FraudulentRows = append(det.FraudulentRows, i)
			det.NoiseRows = append(det.NoiseRows, i)
		}
	}
	return det
}

// Detect is a convenience wrapper around NewDetector(rnd).Detect(t).
func Detect(t parser.Table, rnd RandomSource) []int {
	return NewDetector(rnd).Detect(t)
}

// NumericColumns infers which header columns are numeric by sampling the first
// InferenceSampleSize data rows.
func NumericColumns(t parser.Table) []int {
	rows := t.Rows()
	if len(rows) == 0 {
		return nil
	}
	sample := min(InferenceSampleSize, len(rows))
	var cols []int
	for col := 0; col < t.Width(); col++ {
		numeric := 0
		for _, row := range rows[:sample] {
			if _, ok := cellNumber(row, col); ok {
				numeric++
			}
		}
		if float64(numeric) >= float64(sample)*NumericRatio {
			cols = append(cols, col)
		}
	}
	return cols
}

// exceedsThreshold reports whether any informative column puts row more than
// ZScoreThreshold deviations from its mean. It stops at the first hit.
func exceedsThreshold(row []string, stats []ColumnStats) bool {
	for _, s := range stats {
		if !s.Valid || s.StdDev == 0 {
			continue
		}
		v, ok := cellNumber(row, s.Column)
		if !ok {
			continue
		}
		if s.ZScore(v) > ZScoreThreshold {
			return true
		}
	}
	return false
}

// cellNumber parses row[col]. Cells past the end of a short row are treated as
// non-numeric rather than padded.
func cellNumber(row []string, col int) (float64, bool) {
	if col < 0 || col >= len(row) {
		return 0, false
	}
	return parseNumber(row[col])
}

// parseNumber accepts a finite number with optional surrounding whitespace.
// Blank cells are not numbers.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
