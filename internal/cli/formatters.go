package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Table renders rows with go-pretty
type Table struct {
	writer table.Writer
}

// NewTable creates a table writing to w with the given column headers
func NewTable(w io.Writer, columns ...string) *Table {
	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleRounded)
	if noColor {
		writer.SetStyle(table.StyleLight)
	}

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	writer.AppendHeader(header)
	return &Table{writer: writer}
}

// Row appends a table row
func (t *Table) Row(values ...string) {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	t.writer.AppendRow(row)
}

// Len returns the number of rows appended so far
func (t *Table) Len() int {
	return t.writer.Length()
}

// Render writes the table to its output
func (t *Table) Render() {
	t.writer.Render()
}

// OutputResults formats and outputs results based on the specified format
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return err
		}
		return encoder.Close()

	case FormatText:
		// For text format, we expect the caller to have already formatted
		// the data appropriately. This is a fallback.
		fmt.Fprintf(w, "%v\n", data)
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// TruncateString truncates a string to the specified display width
func TruncateString(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return truncate.String(s, uint(max(maxLen, 0)))
	}
	return truncate.StringWithTail(s, uint(maxLen), "...")
}

// FormatDate renders a date column; zero times render as a dash
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

// FormatBool renders a yes/no column
func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatPrice renders a price column; zero renders as a dash
func FormatPrice(p float64) string {
	if p == 0 {
		return "-"
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// FormatCategory renders a category column; records without one render as
// a dash
func FormatCategory(c string) string {
	if c == "" {
		return "-"
	}
	return c
}
