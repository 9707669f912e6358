package listing

import (
	"cmp"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
)

// Comparator orders two records, returning a negative number when a sorts
// before b, zero when they tie and a positive number otherwise
type Comparator[T any] func(a, b T) int

// Casers keep internal state, so each comparison borrows one from the pool
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// Fold returns the case-folded form of s used for case-insensitive ordering
func Fold(s string) string {
	c := folders.Get().(*cases.Caser)
	defer folders.Put(c)
	return c.String(s)
}

// CompareText compares two strings case-insensitively. Equal folded strings
// tie even when their case differs.
func CompareText(a, b string) int {
	return strings.Compare(Fold(a), Fold(b))
}

// ByText orders by a textual field. An absent field is the empty string and
// therefore sorts lowest.
func ByText[T any](field func(T) string) Comparator[T] {
	return func(a, b T) int {
		return CompareText(field(a), field(b))
	}
}

// ByNumber orders by a numeric field such as a rating or a price
func ByNumber[T any, N cmp.Ordered](field func(T) N) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// ByCount orders by the length of a related slice
func ByCount[T any, E any](field func(T) []E) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(len(field(a)), len(field(b)))
	}
}

// ByBool orders false before true
func ByBool[T any](field func(T) bool) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(boolRank(field(a)), boolRank(field(b)))
	}
}

// ByTime orders by instant. The zero time sorts lowest.
func ByTime[T any](field func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		return field(a).Compare(field(b))
	}
}

// ByPosition orders by each record's position in an owner-defined sequence.
// Records missing from positions are treated as position 0.
func ByPosition[T any](id func(T) string, positions map[string]int) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(positions[id(a)], positions[id(b)])
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
