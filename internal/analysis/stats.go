package analysis

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/fraudscan-cli/internal/parser"
)

// ColumnStats captures the mean and population standard deviation of one
// numeric column.
type ColumnStats struct {
	Column int     `json:"column"`
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	// Valid is false when no cell in the column parsed as a number or the
	// mean or deviation overflowed; such a column contributes nothing to
	// classification.
	Valid bool `json:"valid"`
}

// ZScore is |v - Mean| / StdDev. Callers must skip columns with StdDev == 0.
func (s ColumnStats) ZScore(v float64) float64 {
	return math.Abs(v-s.Mean) / s.StdDev
}

// ComputeColumnStats collects every parseable cell of each listed column and
// computes its mean and population standard deviation (divide by N).
// Unparseable and blank cells are excluded rather than counted as zero.
func ComputeColumnStats(t parser.Table, columns []int) []ColumnStats {
	header := t.Header()
	out := make([]ColumnStats, 0, len(columns))
	for _, col := range columns {
		cs := ColumnStats{Column: col}
		if col < len(header) {
			cs.Name = header[col]
		}
		var values stats.Float64Data
		for _, row := range t.Rows() {
			if v, ok := cellNumber(row, col); ok {
				values = append(values, v)
			}
		}
		cs.Count = len(values)
		mean, err := stats.Mean(values)
		if err != nil {
			out = append(out, cs)
			continue
		}
		std, err := stats.StandardDeviationPopulation(values)
		if err != nil {
			out = append(out, cs)
			continue
		}
		if !finite(mean) || !finite(std) {
			out = append(out, cs)
			continue
		}
		cs.Mean, cs.StdDev, cs.Valid = mean, std, true
		out = append(out, cs)
	}
	return out
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
