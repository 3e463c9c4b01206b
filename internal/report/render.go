package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"

	"github.com/KaramelBytes/fraudscan-cli/internal/analysis"
	"github.com/KaramelBytes/fraudscan-cli/internal/utils"
)

// Format selects a renderer.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
)

// ParseFormat accepts "markdown"/"md", "json" and "html".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use markdown|json|html)", s)
	}
}

// ContentType is the HTTP media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// document is the JSON envelope: the uncapped result plus the summary.
type document struct {
	Result  *analysis.Result `json:"result"`
	Summary Summary          `json:"summary"`
}

// JSON renders the full, uncapped result with its summary.
func (r *Report) JSON() ([]byte, error) {
	return utils.PrettyJSON(document{Result: r.Result, Summary: r.Summary})
}

// HTML renders the Markdown report as a standalone HTML page. Cell values
// and names are escaped, and raw HTML is dropped, so uploaded data is always
// shown as text.
func (r *Report) HTML() []byte {
	p := mdparser.NewWithExtensions(mdparser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage | mdhtml.SkipHTML | mdhtml.Safelink,
		Title: "Fraud Analysis",
	})
	return markdown.ToHTML([]byte(r.markdown(escapeMarkdown)), p, renderer)
}

// Render dispatches on f.
func (r *Report) Render(f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return r.JSON()
	case FormatHTML:
		return r.HTML(), nil
	case FormatMarkdown:
		return []byte(r.Markdown()), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}
