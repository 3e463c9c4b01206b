package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/fraudscan-cli/internal/analysis"
)

func sampleCSV(rows int, outlierAt int) string {
	var b strings.Builder
	b.WriteString("id,amount,c3,c4,c5,c6,c7,c8,c9,c10\n")
	for i := 0; i < rows; i++ {
		amount := "10"
		if i == outlierAt {
			amount = "5000"
		}
		fmt.Fprintf(&b, "%d,%s,a,b,c,d,e,f,g,h|x\n", i, amount)
	}
	return b.String()
}

func TestNew_Summary(t *testing.T) {
	a := analysis.Run(sampleCSV(30, 29), analysis.NoNoise)
	rep := New(a, Options{Name: "tx.csv"})
	s := rep.Summary

	_, err := uuid.Parse(s.RunID)
	require.NoError(t, err)
	assert.Equal(t, "tx.csv", s.Name)
	assert.Equal(t, 30, s.TotalRecords)
	assert.Equal(t, 10, s.FieldsAnalyzed)
	assert.Equal(t, 29, s.NormalRecords)
	assert.Equal(t, 1, s.SuspiciousCount)
	require.NotNil(t, s.FraudRate)
	assert.InDelta(t, 100.0/30, *s.FraudRate, 1e-9)
	assert.Len(t, s.NumericColumns, 2)
	assert.Equal(t, "Detected 1 potential frauds", rep.Status())
}

func TestNew_ZeroRowsGuardsFraudRate(t *testing.T) {
	rep := New(analysis.Run("id,amount\n", nil), DefaultOptions())
	assert.Nil(t, rep.Summary.FraudRate)
	assert.Equal(t, "No fraudulent activity detected", rep.Status())

	md := rep.Markdown()
	assert.Contains(t, md, "Fraud Rate: n/a (no data rows)")
	assert.NotContains(t, md, "[TRANSACTIONS]")
}

func TestMarkdown_CapsRowsAndColumns(t *testing.T) {
	a := analysis.Run(sampleCSV(150, 120), analysis.NoNoise)
	md := New(a, DefaultOptions()).Markdown()

	assert.Contains(t, md, "[DATASET OVERVIEW]")
	assert.Contains(t, md, "- Total Records: 150")
	assert.Contains(t, md, "- Fields Analyzed: 10")
	assert.Contains(t, md, "- Suspicious Records: 1")
	assert.Contains(t, md, "1 out of 150 transactions were flagged as potentially fraudulent.")
	assert.Contains(t, md, "[NUMERIC COLUMNS]")
	assert.Contains(t, md, "Showing 100 of 150 rows and 8 of 10 columns.")
	// the outlier row is beyond the display cap
	assert.NotContains(t, md, "⚠ suspicious")
	// header shows c8 but not c9
	assert.Contains(t, md, "| c8 |")
	assert.NotContains(t, md, "c9 |")
}

func TestMarkdown_MarksFlaggedRows(t *testing.T) {
	a := analysis.Run(sampleCSV(30, 3), analysis.NoNoise)
	md := New(a, Options{}).Markdown()
	assert.Contains(t, md, "| ⚠ suspicious | 3 | 5000 |")
	assert.NotContains(t, md, "Showing")
	// pipes inside cells are neutralised
	assert.Contains(t, md, "h/x")
}

func TestMarkdown_AllLegitimate(t *testing.T) {
	a := analysis.Run(sampleCSV(5, -1), analysis.NoNoise)
	md := New(a, DefaultOptions()).Markdown()
	assert.Contains(t, md, "All 5 transactions in the dataset appear to be legitimate.")
	assert.Contains(t, md, "constant, skipped")
}

func TestJSON_IsUncapped(t *testing.T) {
	a := analysis.Run(sampleCSV(150, 120), analysis.NoNoise)
	b, err := New(a, DefaultOptions()).JSON()
	require.NoError(t, err)

	var doc struct {
		Result  analysis.Result `json:"result"`
		Summary Summary         `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, 150, doc.Result.TotalRows)
	assert.Len(t, doc.Result.Data, 150)
	assert.Len(t, doc.Result.Data[0], 10)
	assert.Equal(t, []int{120}, doc.Result.FraudulentRows)
	assert.Equal(t, doc.Result.Headers, doc.Result.AnalyzedColumns)
	assert.Equal(t, 1, doc.Summary.SuspiciousCount)
}

func TestHTML(t *testing.T) {
	a := analysis.Run(sampleCSV(10, -1), analysis.NoNoise)
	html := string(New(a, DefaultOptions()).HTML())
	assert.Contains(t, html, "<title>Fraud Analysis</title>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "Total Records: 10")
}

func TestHTML_EscapesCellValues(t *testing.T) {
	a := analysis.Run("id,<b>note</b>\n1,<script>alert(1)</script>\n2,<img src=x onerror=alert(2)>\n3,[x](javascript:alert(3)) & co\n", analysis.NoNoise)
	html := string(New(a, Options{Name: "<i>tx</i>.csv"}).HTML())

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "<b>note")
	assert.NotContains(t, html, "<i>tx")
	assert.NotContains(t, html, `href="javascript`)
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, html, "&lt;img src=x onerror=alert(2)&gt;")
	assert.Contains(t, html, "&amp; co")

	// the plain markdown keeps values verbatim
	md := New(a, DefaultOptions()).Markdown()
	assert.Contains(t, md, "| ok | 1 | <script>alert(1)</script> |")
}

func TestMarkdown_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("a", 76) + "ééééé"
	a := analysis.Run("id,note\n1,"+long+"\n", analysis.NoNoise)
	md := New(a, DefaultOptions()).Markdown()

	assert.True(t, utf8.ValidString(md))
	assert.Contains(t, md, "| 1 | "+strings.Repeat("a", 76)+"é... |")

	exact := strings.Repeat("é", 80)
	md = New(analysis.Run("id,note\n1,"+exact+"\n", analysis.NoNoise), DefaultOptions()).Markdown()
	assert.Contains(t, md, exact+" |")
}

func TestJSON_OverflowingColumn(t *testing.T) {
	a := analysis.Run("amount\n1e308\n1e308\n1e308\n", analysis.NoNoise)
	rep := New(a, DefaultOptions())
	b, err := rep.JSON()
	require.NoError(t, err)

	var doc struct {
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))
	require.Len(t, doc.Summary.NumericColumns, 1)
	assert.False(t, doc.Summary.NumericColumns[0].Valid)
	assert.Empty(t, rep.Result.FraudulentRows)
	assert.Contains(t, rep.Markdown(), "- amount: values out of range, skipped")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":         FormatMarkdown,
		"md":       FormatMarkdown,
		"Markdown": FormatMarkdown,
		"json":     FormatJSON,
		" HTML ":   FormatHTML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRender_Dispatch(t *testing.T) {
	rep := New(analysis.Run(sampleCSV(3, -1), analysis.NoNoise), DefaultOptions())
	for _, f := range []Format{FormatMarkdown, FormatJSON, FormatHTML} {
		b, err := rep.Render(f)
		require.NoError(t, err)
		assert.NotEmpty(t, b)
	}
	_, err := rep.Render(Format("pdf"))
	assert.Error(t, err)
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}
