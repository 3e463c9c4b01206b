package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/KaramelBytes/fraudscan-cli/internal/analysis"
)

// Options controls how much of a result is displayed. Caps only affect the
// rendered row table; the JSON rendering always carries the full result.
type Options struct {
	// MaxRows limits rows shown in the data table; 0 means unlimited.
	MaxRows int
	// MaxCols limits columns shown in the data table; 0 means unlimited.
	MaxCols int
	// Name is the dataset label (usually the file name).
	Name string
}

// DefaultOptions mirrors the dashboard limits: 100 rows, 8 columns.
func DefaultOptions() Options {
	return Options{MaxRows: 100, MaxCols: 8}
}

// Summary holds the dashboard figures derived from a result.
type Summary struct {
	RunID           string                 `json:"runId"`
	Name            string                 `json:"name,omitempty"`
	TotalRecords    int                    `json:"totalRecords"`
	FieldsAnalyzed  int                    `json:"fieldsAnalyzed"`
	ColumnNames     []string               `json:"columnNames"`
	NormalRecords   int                    `json:"normalRecords"`
	SuspiciousCount int                    `json:"suspiciousRecords"`
	FraudRate       *float64               `json:"fraudRate"`
	NumericColumns  []analysis.ColumnStats `json:"numericColumns"`
}

// Report is a rendered view over one analysis.
type Report struct {
	Summary Summary
	Result  *analysis.Result
	opt     Options
}

// New builds a report for a. Each report gets a fresh run id.
func New(a analysis.Analysis, opt Options) *Report {
	res := a.Result
	s := Summary{
		RunID:           uuid.NewString(),
		Name:            opt.Name,
		TotalRecords:    res.TotalRows,
		FieldsAnalyzed:  len(res.AnalyzedColumns),
		ColumnNames:     res.AnalyzedColumns,
		NormalRecords:   res.LegitimateRows(),
		SuspiciousCount: len(res.FraudulentRows),
		NumericColumns:  a.Detection.Stats,
	}
	if pct, ok := res.FraudRate(); ok {
		s.FraudRate = &pct
	}
	return &Report{Summary: s, Result: res, opt: opt}
}

// Status is the one-line outcome shown after an analysis.
func (r *Report) Status() string {
	if n := r.Summary.SuspiciousCount; n > 0 {
		return fmt.Sprintf("Detected %d potential frauds", n)
	}
	return "No fraudulent activity detected"
}

// Markdown renders the summary and the capped data table.
func (r *Report) Markdown() string { return r.markdown(plainText) }

// markdown builds the report, passing every dataset-supplied string through
// text before it is written.
func (r *Report) markdown(text func(string) string) string {
	var b strings.Builder
	s := r.Summary
	b.WriteString("# Fraud Analysis\n\n")
	b.WriteString("[DATASET OVERVIEW]\n\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("- File: %s\n", text(s.Name)))
	}
	b.WriteString(fmt.Sprintf("- Total Records: %d\n", s.TotalRecords))
	b.WriteString(fmt.Sprintf("- Fields Analyzed: %d\n", s.FieldsAnalyzed))
	if len(s.ColumnNames) > 0 {
		names := make([]string, len(s.ColumnNames))
		for i, n := range s.ColumnNames {
			names[i] = text(safeName(n))
		}
		b.WriteString(fmt.Sprintf("- Column Names: %s\n", strings.Join(names, ", ")))
	}

	b.WriteString("\n[FRAUD SUMMARY]\n\n")
	b.WriteString(fmt.Sprintf("- Normal Records: %d\n", s.NormalRecords))
	b.WriteString(fmt.Sprintf("- Suspicious Records: %d\n", s.SuspiciousCount))
	if s.FraudRate != nil {
		b.WriteString(fmt.Sprintf("- Fraud Rate: %.2f%%\n", *s.FraudRate))
	} else {
		b.WriteString("- Fraud Rate: n/a (no data rows)\n")
	}
	b.WriteString("\n")
	b.WriteString(r.verdict())
	b.WriteString("\n")

	if len(s.NumericColumns) > 0 {
		b.WriteString("\n[NUMERIC COLUMNS]\n\n")
		for _, c := range s.NumericColumns {
			if !c.Valid {
				b.WriteString(fmt.Sprintf("- %s: %s\n", text(safeName(c.Name)), invalidReason(c)))
				continue
			}
			b.WriteString(fmt.Sprintf("- %s: mean %.4g, std %.4g (n=%d)", text(safeName(c.Name)), c.Mean, c.StdDev, c.Count))
			if c.StdDev == 0 {
				b.WriteString("; constant, skipped")
			}
			b.WriteString("\n")
		}
	}

	if r.Result.TotalRows > 0 && len(r.Result.Headers) > 0 {
		b.WriteString("\n[TRANSACTIONS]\n\n")
		r.writeTable(&b, text)
	}
	return b.String()
}

func (r *Report) verdict() string {
	res := r.Result
	if n := len(res.FraudulentRows); n > 0 {
		return fmt.Sprintf("%d out of %d transactions were flagged as potentially fraudulent.", n, res.TotalRows)
	}
	return fmt.Sprintf("All %d transactions in the dataset appear to be legitimate.", res.TotalRows)
}

func (r *Report) writeTable(b *strings.Builder, text func(string) string) {
	res := r.Result
	cols := capLen(len(res.Headers), r.opt.MaxCols)
	rows := capLen(len(res.Data), r.opt.MaxRows)

	b.WriteString("| Status | ")
	for i := 0; i < cols; i++ {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(text(safeName(res.Headers[i])))
	}
	b.WriteString(" |\n|---|")
	for i := 0; i < cols; i++ {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	flagged := make(map[int]struct{}, len(res.FraudulentRows))
	for _, idx := range res.FraudulentRows {
		flagged[idx] = struct{}{}
	}
	for i := 0; i < rows; i++ {
		row := res.Data[i]
		if _, ok := flagged[i]; ok {
			b.WriteString("| ⚠ suspicious | ")
		} else {
			b.WriteString("| ok | ")
		}
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if j < len(row) {
				val = row[j]
			}
			b.WriteString(text(safeVal(truncate(val, 80))))
		}
		b.WriteString(" |\n")
	}
	if rows < len(res.Data) || cols < len(res.Headers) {
		b.WriteString(fmt.Sprintf("\nShowing %d of %d rows and %d of %d columns.\n", rows, len(res.Data), cols, len(res.Headers)))
	}
}

func capLen(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}
	return n
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return safeVal(s)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func invalidReason(c analysis.ColumnStats) string {
	if c.Count == 0 {
		return "no parseable values"
	}
	return "values out of range, skipped"
}

func plainText(s string) string { return s }

// mdEscaper backslash-escapes characters that markdown would otherwise read
// as inline HTML, entities, links or emphasis.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
)

func escapeMarkdown(s string) string { return mdEscaper.Replace(s) }
