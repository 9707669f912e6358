package listing

import "slices"

// SortContext carries inputs a sort may depend on besides the records
// themselves, so sort functions stay pure
type SortContext struct {
	// Positions maps record id to its position in an owner-defined order
	Positions map[string]int
}

// Positions builds a position map from an ordered id list. The first id is
// position 0; duplicate ids keep their first position.
func Positions(ids []string) map[string]int {
	positions := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, seen := positions[id]; !seen {
			positions[id] = i
		}
	}
	return positions
}

// Sort returns a new slice with records ordered by compare in the given
// direction. Records tied on compare are ordered by name ascending whatever
// the direction; pass a nil name when compare already is the name ordering.
// The input slice is never modified and the output always has the same
// length as the input.
func Sort[T any](records []T, compare Comparator[T], name func(T) string, order Order) []T {
	out := slices.Clone(records)
	if compare == nil {
		return out
	}

	var tieBreak Comparator[T]
	if name != nil {
		tieBreak = ByText(name)
	}

	slices.SortStableFunc(out, func(a, b T) int {
		if c := compare(a, b); c != 0 {
			if order == Descending {
				return -c
			}
			return c
		}
		if tieBreak == nil {
			return 0
		}
		return tieBreak(a, b)
	})

	return out
}
