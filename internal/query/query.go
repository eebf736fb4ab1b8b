// Package query derives list views from an entity collection: free-text
// search, exact and range filters, and a stable two-key sort. Everything
// here is pure; callers own the state that feeds it.
package query

import (
	"sort"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Predicate reports whether an entity satisfies one filter constraint.
type Predicate[E any] func(E) bool

type Options[E any] struct {
	// Search is matched as a case-insensitive substring against each of
	// the values returned by SearchFields; a record matches if any field
	// matches. Empty search matches everything.
	Search       string
	SearchFields func(E) []string
	// Filters are AND-ed: a record must satisfy every predicate.
	Filters []Predicate[E]
	// Less orders by the active sort key, ascending. Dir == Desc flips
	// the comparator. Ties keep the input (store) order.
	Less func(a, b E) bool
	Dir  Direction
}

// Run returns the filtered, sorted view of all. The input slice is never
// mutated; identical inputs yield identical output ordering.
func Run[E any](all []E, o Options[E]) []E {
	term := strings.ToLower(strings.TrimSpace(o.Search))
	out := make([]E, 0, len(all))
	for _, e := range all {
		if term != "" && o.SearchFields != nil && !matchesAny(o.SearchFields(e), term) {
			continue
		}
		if !passesAll(e, o.Filters) {
			continue
		}
		out = append(out, e)
	}
	if o.Less != nil {
		less := o.Less
		if o.Dir == Desc {
			asc := less
			less = func(a, b E) bool { return asc(b, a) }
		}
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func matchesAny(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func passesAll[E any](e E, filters []Predicate[E]) bool {
	for _, p := range filters {
		if !p(e) {
			return false
		}
	}
	return true
}

// Exact builds an exact-match predicate. An empty want is no constraint.
func Exact[E any](get func(E) string, want string) Predicate[E] {
	if want == "" {
		return func(E) bool { return true }
	}
	return func(e E) bool { return get(e) == want }
}

// Range constrains a numeric field to [minVal, maxVal] inclusive.
func Range[E any](get func(E) float64, minVal, maxVal float64) Predicate[E] {
	return func(e E) bool {
		v := get(e)
		return v >= minVal && v <= maxVal
	}
}
