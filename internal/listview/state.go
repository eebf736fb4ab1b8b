// Package listview holds the state of a list screen — search text,
// active filters, sort and page — together with the single-slot dialog
// orchestrator that governs its CRUD modals. The state is an explicit
// struct with reducer-style transitions so the whole machine is testable
// without any rendering layer.
package listview

import "diamondadmin/internal/query"

// DefaultMaxPrice is the upper bound of the price filter when no
// explicit range is set.
const DefaultMaxPrice = 100000

// RangeFilter constrains a numeric field to [Min, Max] inclusive.
type RangeFilter struct {
	Min float64
	Max float64
}

// State describes one list screen. Every transition that can change the
// derived result set (search, filters, sort) snaps Page back to 1;
// otherwise the user could be stranded on a page that no longer exists.
type State struct {
	Search   string
	Exact    map[string]string
	Price    RangeFilter
	SortKey  string
	Dir      query.Direction
	Page     int
	PageSize int
}

func NewState(sortKey string, dir query.Direction, pageSize int) State {
	return State{
		Exact:    map[string]string{},
		Price:    RangeFilter{Max: DefaultMaxPrice},
		SortKey:  sortKey,
		Dir:      dir,
		Page:     1,
		PageSize: pageSize,
	}
}

func (s *State) SetSearch(term string) {
	s.Search = term
	s.Page = 1
}

// SetFilter sets or clears (empty value) an exact-match filter.
func (s *State) SetFilter(field, value string) {
	if value == "" {
		delete(s.Exact, field)
	} else {
		s.Exact[field] = value
	}
	s.Page = 1
}

func (s *State) SetPriceRange(minVal, maxVal float64) {
	s.Price = RangeFilter{Min: minVal, Max: maxVal}
	s.Page = 1
}

func (s *State) SetSort(key string, dir query.Direction) {
	s.SortKey = key
	s.Dir = dir
	s.Page = 1
}

// ToggleSort flips the direction when key is already the active sort
// key, and otherwise switches to key ascending. This is the column
// header behavior of the customer screen.
func (s *State) ToggleSort(key string) {
	if s.SortKey == key {
		if s.Dir == query.Asc {
			s.Dir = query.Desc
		} else {
			s.Dir = query.Asc
		}
	} else {
		s.SortKey = key
		s.Dir = query.Asc
	}
	s.Page = 1
}

// SetPage moves to a page without touching filters. Values below 1 clamp
// to 1; pages past the end are handled by the pagination engine, which
// returns an empty slice.
func (s *State) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.Page = page
}

// ClearFilters resets search and every filter to the initial widening
// state and returns to the first page.
func (s *State) ClearFilters() {
	s.Search = ""
	s.Exact = map[string]string{}
	s.Price = RangeFilter{Max: DefaultMaxPrice}
	s.Page = 1
}
