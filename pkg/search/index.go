package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Field describes one searchable field of a record
type Field[T any] struct {
	Name string
	// Boost is added to every match score on this field so that, for
	// example, a name hit outranks a description hit of the same quality
	Boost int
	// Value extracts the searchable text. Slice-valued fields join their
	// elements with spaces.
	Value func(T) string
}

// Match is a ranked search hit
type Match[T any] struct {
	Item  T
	Index int    // position in the indexed records
	Field string // field that produced the best score
	Score int
}

// Index is a fuzzy full-text index over a fixed set of records. It is a
// derived cache: when the records change, build a new Index instead of
// patching this one.
type Index[T any] struct {
	records []T
	fields  []Field[T]
	columns [][]string // per field, the extracted text of every record
}

// NewIndex builds an index over records for the given fields
func NewIndex[T any](records []T, fields []Field[T]) *Index[T] {
	idx := &Index[T]{
		records: records,
		fields:  fields,
		columns: make([][]string, len(fields)),
	}

	for f, field := range fields {
		column := make([]string, len(records))
		for i, record := range records {
			column[i] = field.Value(record)
		}
		idx.columns[f] = column
	}

	return idx
}

// Len returns the number of indexed records
func (idx *Index[T]) Len() int {
	return len(idx.records)
}

// Records returns the indexed records in their original order
func (idx *Index[T]) Records() []T {
	return idx.records
}

// Search returns the records matching query, best match first. A blank
// query returns every record in its original order.
func (idx *Index[T]) Search(query string) []T {
	if strings.TrimSpace(query) == "" {
		return idx.records
	}

	matches := idx.Matches(query)
	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.Item
	}
	return out
}

// Matches returns ranked hits for query. Every record appears at most once,
// scored by its best field. Equal scores keep the original record order.
func (idx *Index[T]) Matches(query string) []Match[T] {
	query = strings.TrimSpace(query)
	if query == "" || len(idx.records) == 0 {
		return []Match[T]{}
	}

	best := make(map[int]Match[T])
	for f, field := range idx.fields {
		for _, m := range fuzzy.FindFrom(query, column(idx.columns[f])) {
			score := m.Score + field.Boost
			if current, seen := best[m.Index]; seen && current.Score >= score {
				continue
			}
			best[m.Index] = Match[T]{
				Item:  idx.records[m.Index],
				Index: m.Index,
				Field: field.Name,
				Score: score,
			}
		}
	}

	results := make([]Match[T], 0, len(best))
	for _, m := range best {
		results = append(results, m)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})

	return results
}

// column adapts one field's extracted text to fuzzy.Source
type column []string

func (c column) Len() int {
	return len(c)
}

func (c column) String(i int) string {
	return c[i]
}

// Join is a Field.Value helper for slice-valued fields
func Join(values []string) string {
	return strings.Join(values, " ")
}
