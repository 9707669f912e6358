package search

import (
	"regexp"
	"strings"
)

// FilterHelper rewrites the key:value filters embedded in a query string so
// menus and key bindings can toggle criteria without touching free text
type FilterHelper struct{}

// NewFilterHelper creates a new filter helper
func NewFilterHelper() *FilterHelper {
	return &FilterHelper{}
}

// SetFilter replaces any key filter in query with key:value. An empty value
// removes the filter.
func (fh *FilterHelper) SetFilter(query, key, value string) string {
	query = fh.RemoveFilter(query, key)
	if value == "" {
		return query
	}
	if strings.ContainsAny(value, " \t") {
		value = `"` + value + `"`
	}
	return fh.appendFilter(query, key+":"+value)
}

// RemoveFilter removes every key filter from query
func (fh *FilterHelper) RemoveFilter(query, key string) string {
	re := regexp.MustCompile(`(?i)(^|\s)` + regexp.QuoteMeta(key) + `:("[^"]*"|\S*)`)
	return fh.cleanupSpaces(re.ReplaceAllString(query, " "))
}

// ExtractFilter returns the current value of the key filter, or "" if none
func (fh *FilterHelper) ExtractFilter(query, key string) string {
	value, _ := ParseQuery(query).Get(key)
	return value
}

// CycleFilter moves the key filter to the next entry of values. The empty
// string in values stands for "no filter"; a value not in the cycle restarts
// it from the beginning.
func (fh *FilterHelper) CycleFilter(query, key string, values []string) string {
	if len(values) == 0 {
		return query
	}

	current := fh.ExtractFilter(query, key)

	next := 0
	for i, v := range values {
		if strings.EqualFold(v, current) {
			next = (i + 1) % len(values)
			break
		}
	}

	return fh.SetFilter(query, key, values[next])
}

// ToggleBoolFilter cycles a tri-state filter: unset -> true -> false -> unset
func (fh *FilterHelper) ToggleBoolFilter(query, key string) string {
	return fh.CycleFilter(query, key, []string{"", "true", "false"})
}

// CurrentFilters returns "key: value" labels for display
func (fh *FilterHelper) CurrentFilters(query string) []string {
	var labels []string
	for _, c := range ParseQuery(query).Conditions {
		labels = append(labels, c.Key+": "+c.Value)
	}
	return labels
}

// appendFilter adds a filter to the query with proper spacing
func (fh *FilterHelper) appendFilter(query, filter string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return filter
	}
	return query + " " + filter
}

// cleanupSpaces removes extra spaces and trims the result
func (fh *FilterHelper) cleanupSpaces(s string) string {
	re := regexp.MustCompile(`\s+`)
	s = re.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
