package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader draws the app badge followed by one label per tab. When a
// collection is open its name is shown as a breadcrumb after the tabs.
func renderHeader(width int, tabs []string, active int, breadcrumb string) string {
	labels := make([]string, 0, len(tabs)+2)
	labels = append(labels, BrandStyle.Render("stash"))
	for i, title := range tabs {
		label := title
		if i < 9 {
			label = string(rune('1'+i)) + " " + title
		}
		if i == active {
			labels = append(labels, ActiveTabStyle.Render(label))
		} else {
			labels = append(labels, InactiveTabStyle.Render(label))
		}
	}
	if breadcrumb != "" {
		labels = append(labels, DescriptionStyle.Render("› "+breadcrumb))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(labels, " "))
	return ContentPaddingStyle.Width(width).Render(row)
}
