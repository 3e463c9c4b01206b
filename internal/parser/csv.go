package parser

import "strings"

// Parse splits CSV text into rows of raw fields.
//
// The parser is permissive: it never fails. Lines are split on LF with an
// optional trailing CR, and blank or whitespace-only lines are dropped, so a
// blank line inside the data is lost. A double quote toggles quoted mode and
// is not copied into the field; a doubled quote ("") therefore toggles twice
// instead of producing a literal quote. Commas inside quotes are kept. Fields
// are not trimmed.
func Parse(content string) Table {
	lines := strings.Split(content, "\n")
	t := make(Table, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t = append(t, splitLine(line))
	}
	return t
}

func splitLine(line string) []string {
	var (
		fields  []string
		cur     strings.Builder
		inQuote bool
	)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
		case ch == ',' && !inQuote:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	// last field is pushed even when empty ("a," -> ["a", ""])
	return append(fields, cur.String())
}
