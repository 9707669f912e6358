package listing

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// NoneValue is the sentinel category criterion meaning "field must be empty"
const NoneValue = "none"

// Predicate decides whether a record stays in the result
type Predicate[T any] func(T) bool

// Filter keeps the records that satisfy every predicate. Nil predicates are
// absent criteria and impose no constraint, so Filter with no predicates is
// the identity. The input slice is never modified.
func Filter[T any](records []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return slices.Clone(records)
	}

	out := make([]T, 0, len(records))
	for _, record := range records {
		if matchesAll(record, active) {
			out = append(out, record)
		}
	}
	return out
}

func matchesAll[T any](record T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(record) {
			return false
		}
	}
	return true
}

// noMatch is the boolean criterion stored for a value that is neither true
// nor false. Compared by identity, never by value.
var noMatch = new(bool)

// IsNoMatch reports whether b is the criterion no record satisfies
func IsNoMatch(b *bool) bool {
	return b == noMatch
}

// MatchBool builds a tri-state predicate: nil imposes nothing, true requires
// the field to be true and false requires it to be false
func MatchBool[T any](want *bool, field func(T) bool) Predicate[T] {
	if want == nil {
		return nil
	}
	if IsNoMatch(want) {
		return func(T) bool { return false }
	}
	expected := *want
	return func(record T) bool {
		return field(record) == expected
	}
}

// MatchCategory builds a category predicate. The sentinel "none" requires an
// empty field; any other value matches case-insensitively.
func MatchCategory[T any](want *string, field func(T) string) Predicate[T] {
	if want == nil {
		return nil
	}
	expected := *want
	if strings.EqualFold(expected, NoneValue) {
		return func(record T) bool {
			return strings.TrimSpace(field(record)) == ""
		}
	}
	return func(record T) bool {
		return strings.EqualFold(strings.TrimSpace(field(record)), expected)
	}
}

// BoolValue interprets a criterion value as a tri-state boolean. Nil and
// blank strings clear the criterion. Anything that is not a boolean yields
// the criterion no record satisfies.
func BoolValue(value any) *bool {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		return &v
	case *bool:
		if v == nil || IsNoMatch(v) {
			return v
		}
		b := *v
		return &b
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return noMatch
		}
		return &b
	default:
		return noMatch
	}
}

// StringValue interprets a criterion value as an optional string. Empty
// strings clear the criterion; other types are used in their printed form.
func StringValue(value any) *string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		return &v
	case *string:
		if v == nil {
			return nil
		}
		return StringValue(*v)
	default:
		return StringValue(fmt.Sprint(v))
	}
}

// Ptr returns a pointer to v, handy for building criteria
func Ptr[V any](v V) *V {
	return &v
}
