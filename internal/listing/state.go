// Package listing models the product-listing page: an explicit state object
// with named transitions, one-directional URL synchronization, and a fetch
// controller that talks to the listing endpoint. It replaces the original
// page's implicit reactive bindings with functions that can be tested.
package listing

import "strings"

// Sort choices as the page exposes them. The endpoint maps them to columns.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortPopular   = "popular"
	SortRating    = "rating"
)

func validSort(choice string) bool {
	switch choice {
	case SortNewest, SortPriceLow, SortPriceHigh, SortPopular, SortRating:
		return true
	}
	return false
}

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

const DefaultPerPage = 12

type State struct {
	Query      string
	CategoryID int64
	Sort       string
	View       ViewMode
	Page       int
	PerPage    int
}

func DefaultState() State {
	return State{Sort: SortNewest, View: ViewGrid, Page: 1, PerPage: DefaultPerPage}
}

// SubmitSearch installs a new search text and returns to the first page.
func (s *State) SubmitSearch(q string) {
	s.Query = strings.TrimSpace(q)
	s.Page = 1
}

// SelectCategory filters by category and returns to the first page.
// Zero clears the filter.
func (s *State) SelectCategory(id int64) {
	if id < 0 {
		id = 0
	}
	s.CategoryID = id
	s.Page = 1
}

// ChangeSort switches the sort choice and returns to the first page, since a
// deep page under a different ordering is an arbitrary window.
func (s *State) ChangeSort(choice string) {
	if !validSort(choice) {
		choice = SortNewest
	}
	s.Sort = choice
	s.Page = 1
}

// GotoPage moves within the current result set; search and filter stay put.
func (s *State) GotoPage(n int) {
	if n < 1 {
		n = 1
	}
	s.Page = n
}

// ToggleView flips grid/list. Pure display state: no fetch, no URL change.
func (s *State) ToggleView() {
	if s.View == ViewGrid {
		s.View = ViewList
	} else {
		s.View = ViewGrid
	}
}

// Reset is the empty-state recovery action: clear search and category and
// start over from page one.
func (s *State) Reset() {
	s.Query = ""
	s.CategoryID = 0
	s.Page = 1
}

// FetchParams flattens the state into listing-endpoint parameters. Sold
// counts are only requested when the page actually displays them.
func (s State) FetchParams() Params {
	return Params{
		Page:          s.Page,
		PerPage:       s.PerPage,
		Query:         s.Query,
		CategoryID:    s.CategoryID,
		SortBy:        s.Sort,
		WithSoldCount: s.Sort == SortPopular,
	}
}
