package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	previewHeight = 4
	minFlexWidth  = 10
	// cursor marker plus the gap before the first column
	rowIndent = 2
)

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

// columnWidths gives fixed columns their width and splits what is left
// between the flexible ones
func columnWidths(columns []column, total int) []int {
	widths := make([]int, len(columns))
	used := rowIndent
	flex := 0
	for i, c := range columns {
		used++ // gap
		if c.width > 0 {
			widths[i] = c.width
			used += c.width
		} else {
			flex++
		}
	}
	if flex == 0 {
		return widths
	}

	share := max((total-used)/flex, minFlexWidth)
	for i, c := range columns {
		if c.width == 0 {
			widths[i] = share
		}
	}
	return widths
}

// cell fits s into exactly width terminal cells
func cell(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if lipgloss.Width(s) > width {
		s = truncate.StringWithTail(s, uint(width), "…")
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// scrollTo keeps the cursor inside a window of height rows
func scrollTo(tab listTab, height int) {
	cursor, offset := tab.Cursor(), tab.Offset()
	switch {
	case cursor < offset:
		offset = cursor
	case cursor >= offset+height:
		offset = cursor - height + 1
	}
	tab.SetOffset(max(offset, 0))
}

// renderTable draws the column header and the visible rows of tab
func renderTable(tab listTab, width, height int, categoryColor func(string) string) string {
	columns := tab.Columns()
	widths := columnWidths(columns, width)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = cell(c.title, widths[i])
	}

	lines := make([]string, 0, height)
	if tab.Len() == 0 {
		lines = append(lines, EmptyActiveStyle.Render(fmt.Sprintf("  No records in %s.", tab.Title())))
	} else {
		scrollTo(tab, height)
		end := min(tab.Offset()+height, tab.Len())
		for i := tab.Offset(); i < end; i++ {
			lines = append(lines, renderRow(tab, i, columns, widths, categoryColor))
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	return HeaderStyle.Render(strings.Repeat(" ", rowIndent)+strings.Join(header, " ")) + "\n" + strings.Join(lines, "\n")
}

func renderRow(tab listTab, i int, columns []column, widths []int, categoryColor func(string) string) string {
	row := tab.Row(i)
	selected := i == tab.Cursor()

	cells := make([]string, len(columns))
	for j, c := range columns {
		value := ""
		if j < len(row) {
			value = row[j]
		}
		text := cell(value, widths[j])
		if !selected && c.category && value != "-" && categoryColor != nil {
			text = CategoryStyle(categoryColor(value)).Render(text)
		}
		cells[j] = text
	}

	line := strings.Join(cells, " ")
	if selected {
		return SelectedStyle.Render("▸ " + line)
	}
	return "  " + line
}

// renderInfo summarises sort, active filters and the record count
func renderInfo(tab listTab, width int) string {
	parts := []string{DescriptionStyle.Render("sort: " + tab.SortLabel())}
	for _, f := range tab.Filters() {
		parts = append(parts, FilterChipStyle.Render(f))
	}
	parts = append(parts, DescriptionStyle.Render(fmt.Sprintf("%d %s", tab.Len(), plural(tab.Len(), "record", "records"))))
	return ContentPaddingStyle.MaxWidth(width).Render(strings.Join(parts, "  "))
}

// renderPreview shows the selected record's description
func renderPreview(tab listTab, width int) string {
	text := strings.TrimSpace(tab.Preview(tab.Cursor()))
	if text == "" {
		text = "No description."
	}

	lines := strings.Split(wordwrap.String(text, max(width-4, 10)), "\n")
	if len(lines) > previewHeight {
		lines = append(lines[:previewHeight-1], "…")
	}
	for len(lines) < previewHeight {
		lines = append(lines, "")
	}

	rule := DescriptionStyle.Render(strings.Repeat("─", max(width-2, 0)))
	return ContentPaddingStyle.Render(rule + "\n" + DescriptionStyle.Render(strings.Join(lines, "\n")))
}

const helpText = "/ search • s/S sort • f category • p toggle • r reset • enter open • y copy • d delete • R reload • v preview • q quit"

const searchHelpText = "type to filter • key:value sets a filter • enter/esc done"

func renderFooter(searching bool, detail bool, width int) string {
	help := helpText
	switch {
	case searching:
		help = searchHelpText
	case detail:
		help = "esc back • " + help
	}
	if limit := max(width-2, 0); lipgloss.Width(help) > limit {
		help = truncate.StringWithTail(help, uint(limit), "…")
	}
	return ContentPaddingStyle.Render(DescriptionStyle.Render(help))
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
