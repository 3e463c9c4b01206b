package analysis

import "github.com/KaramelBytes/fraudscan-cli/internal/parser"

// Result is the outcome of one analysis. It is built once by Analyze and must
// be treated as read-only afterwards; use Clone for a mutable copy.
type Result struct {
	Headers         []string   `json:"headers"`
	Data            [][]string `json:"data"`
	TotalRows       int        `json:"totalRows"`
	AnalyzedColumns []string   `json:"analyzedColumns"`
	FraudulentRows  []int      `json:"fraudulentRows"`
}

// Analysis pairs a Result with the statistics that produced it.
type Analysis struct {
	Result    *Result
	Detection Detection
}

// Analyze parses CSV content and flags anomalous rows, drawing noise from rnd
// (DefaultRandom when nil). It never fails: malformed content simply yields
// fewer numeric columns and fewer flags.
func Analyze(content string, rnd RandomSource) *Result {
	return Run(content, rnd).Result
}

// Run is Analyze, keeping the detector's intermediate output.
func Run(content string, rnd RandomSource) Analysis {
	t := parser.Parse(content)
	det := NewDetector(rnd).Run(t)
	return Analysis{Result: assemble(t, det.FraudulentRows), Detection: det}
}

func assemble(t parser.Table, flagged []int) *Result {
	headers := t.Header()
	if headers == nil {
		headers = []string{}
	}
	data := t.Rows()
	if data == nil {
		data = [][]string{}
	}
	analyzed := append([]string{}, headers...)
	return &Result{
		Headers:         headers,
		Data:            data,
		TotalRows:       len(data),
		AnalyzedColumns: analyzed,
		FraudulentRows:  flagged,
	}
}

// Clone returns a deep copy.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := &Result{TotalRows: r.TotalRows}
	if r.Headers != nil {
		c.Headers = append([]string{}, r.Headers...)
	}
	if r.AnalyzedColumns != nil {
		c.AnalyzedColumns = append([]string{}, r.AnalyzedColumns...)
	}
	if r.FraudulentRows != nil {
		c.FraudulentRows = append([]int{}, r.FraudulentRows...)
	}
	if r.Data != nil {
		c.Data = make([][]string, len(r.Data))
		for i, row := range r.Data {
			c.Data[i] = append([]string{}, row...)
		}
	}
	return c
}

// LegitimateRows is TotalRows minus the flagged rows.
func (r *Result) LegitimateRows() int {
	return r.TotalRows - len(r.FraudulentRows)
}

// FraudRate returns the flagged share as a percentage. ok is false when the
// result has no data rows.
func (r *Result) FraudRate() (pct float64, ok bool) {
	if r.TotalRows == 0 {
		return 0, false
	}
	return float64(len(r.FraudulentRows)) / float64(r.TotalRows) * 100, true
}

// IsFlagged reports whether data row i was flagged.
func (r *Result) IsFlagged(i int) bool {
	for _, idx := range r.FraudulentRows {
		if idx == i {
			return true
		}
		if idx > i {
			return false
		}
	}
	return false
}
