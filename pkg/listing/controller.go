// Package listing is the list management engine behind every list screen:
// a fuzzy search stage, a filter stage and a sort stage, sequenced by a
// Controller that owns the interaction state of one list.
package listing

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/pluqqy/stash-cli/pkg/search"
)

// Criteria is the shape of a list's filter. With returns a copy with key set
// to value; a nil value clears the key. Unknown keys leave the criteria
// unchanged. A value that cannot be interpreted still replaces the key, with
// a criterion no record satisfies.
type Criteria[F any] interface {
	With(key string, value any) F
}

// SortFunc orders records by key and direction. It must never drop records.
type SortFunc[T any, K comparable] func(records []T, by K, order Order, ctx SortContext) []T

// FilterFunc keeps the records matching criteria
type FilterFunc[T any, F any] func(records []T, criteria F) []T

// Config wires a Controller to one list type
type Config[T any, K comparable, F Criteria[F]] struct {
	Name          string
	DefaultSort   K
	DefaultOrder  Order
	DefaultFilter F
	Fields        []search.Field[T]
	Sort          SortFunc[T, K]
	Filter        FilterFunc[T, F]
	// Logger is optional; transitions are logged at debug level
	Logger *log.Logger
}

// State is a snapshot of a list's interaction state and derived result
type State[T any, K comparable, F any] struct {
	Result      []T
	SearchValue string
	SortBy      K
	SortOrder   Order
	Filter      F
}

// Controller holds the state of one list and re-derives its result on every
// transition. After any transition completes, Result is the source narrowed
// by SearchValue, filtered by Filter and ordered by SortBy/SortOrder.
//
// A Controller is owned by a single screen or command and is not safe for
// concurrent use; every transition runs synchronously to completion.
type Controller[T any, K comparable, F Criteria[F]] struct {
	config    Config[T, K, F]
	source    []T
	index     *search.Index[T]
	positions map[string]int
	state     State[T, K, F]
}

// NewController creates a controller in its default state over an empty source
func NewController[T any, K comparable, F Criteria[F]](config Config[T, K, F]) *Controller[T, K, F] {
	if config.DefaultOrder == "" {
		config.DefaultOrder = Ascending
	}

	c := &Controller[T, K, F]{
		config:    config,
		positions: map[string]int{},
	}
	c.state = c.defaultState()
	c.index = search.NewIndex[T](nil, config.Fields)
	c.state.Result = []T{}
	return c
}

func (c *Controller[T, K, F]) defaultState() State[T, K, F] {
	return State[T, K, F]{
		SortBy:    c.config.DefaultSort,
		SortOrder: c.config.DefaultOrder,
		Filter:    c.config.DefaultFilter,
	}
}

// SetSource replaces the record source, rebuilds the search index and re-runs
// the whole pipeline with the current search, filter and sort
func (c *Controller[T, K, F]) SetSource(records []T) {
	c.source = records
	c.index = search.NewIndex(records, c.config.Fields)
	c.state.Result = c.derive()
	c.debug("source changed", "records", len(records), "result", len(c.state.Result))
}

// Search narrows the source to records matching value, then filters and
// sorts. An empty value removes the search.
func (c *Controller[T, K, F]) Search(value string) {
	c.state.SearchValue = value
	c.state.Result = c.derive()
	c.debug("search", "value", value, "result", len(c.state.Result))
}

// Sort re-orders the current result without re-running search or filter
func (c *Controller[T, K, F]) Sort(by K, order Order) {
	c.state.SortBy = by
	c.state.SortOrder = order
	c.state.Result = c.sort(c.state.Result)
	c.debug("sort", "by", by, "order", order)
}

// SetFilter updates one criterion and re-derives the result from the full
// source, since looser criteria may admit records the last result excluded
func (c *Controller[T, K, F]) SetFilter(key string, value any) {
	c.state.Filter = c.state.Filter.With(key, value)
	c.state.Result = c.derive()
	c.debug("filter", "key", key, "value", value, "result", len(c.state.Result))
}

// Reset restores the default sort, filter and search and re-derives the
// result from the full source
func (c *Controller[T, K, F]) Reset() {
	c.state = c.defaultState()
	c.state.Result = c.derive()
	c.debug("reset", "result", len(c.state.Result))
}

// SetPositions replaces the owner-defined order used by position-based sort
// keys and re-sorts the current result
func (c *Controller[T, K, F]) SetPositions(ids []string) {
	c.positions = Positions(ids)
	c.state.Result = c.sort(c.state.Result)
}

// State returns a snapshot of the current state. The Result slice is a copy.
func (c *Controller[T, K, F]) State() State[T, K, F] {
	s := c.state
	s.Result = slices.Clone(c.state.Result)
	if s.Result == nil {
		s.Result = []T{}
	}
	return s
}

// Result returns the current derived records. Callers must not modify it.
func (c *Controller[T, K, F]) Result() []T {
	return c.state.Result
}

// Source returns the full record source
func (c *Controller[T, K, F]) Source() []T {
	return c.source
}

// Matches exposes ranked search hits over the full source for presentation,
// such as highlighting which field matched
func (c *Controller[T, K, F]) Matches(query string) []search.Match[T] {
	return c.index.Matches(query)
}

// Name returns the configured list name
func (c *Controller[T, K, F]) Name() string {
	return c.config.Name
}

func (c *Controller[T, K, F]) derive() []T {
	found := c.index.Search(c.state.SearchValue)

	var filtered []T
	if c.config.Filter != nil {
		filtered = c.config.Filter(found, c.state.Filter)
	} else {
		filtered = slices.Clone(found)
	}

	result := c.sort(filtered)
	if result == nil {
		result = []T{}
	}
	return result
}

func (c *Controller[T, K, F]) sort(records []T) []T {
	if c.config.Sort == nil {
		return records
	}
	return c.config.Sort(records, c.state.SortBy, c.state.SortOrder, SortContext{Positions: c.positions})
}

func (c *Controller[T, K, F]) debug(msg string, keyvals ...any) {
	if c.config.Logger == nil {
		return
	}
	c.config.Logger.Debug(msg, append([]any{"list", c.config.Name}, keyvals...)...)
}
