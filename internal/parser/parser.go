package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a parsed CSV document. Row 0 is the header; the remaining rows are
// data rows. Rows are not required to share the header's width.
type Table [][]string

// Header returns the header row, or nil for an empty table.
func (t Table) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Rows returns the data rows (everything after the header).
func (t Table) Rows() [][]string {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// Width is the number of header columns.
func (t Table) Width() int {
	return len(t.Header())
}

// Equal reports whether two tables have identical rows and fields.
func (t Table) Equal(o Table) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if len(t[i]) != len(o[i]) {
			return false
		}
		for j := range t[i] {
			if t[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// ErrNotCSV is returned when an input is rejected before parsing because its
// name does not look like a CSV file.
var ErrNotCSV = errors.New("please upload a CSV file")

// CanParse reports whether filename looks like a CSV document. "-" means stdin.
func CanParse(filename string) bool {
	if filename == "-" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

// ReadFile loads CSV text from path, or from stdin when path is "-".
// The returned string is handed to Parse unmodified.
func ReadFile(path string, stdin io.Reader) (string, error) {
	if !CanParse(path) {
		return "", fmt.Errorf("%s: %w", path, ErrNotCSV)
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("file could not be read: %w", err)
	}
	return string(data), nil
}
