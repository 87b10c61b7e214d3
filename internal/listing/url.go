package listing

import (
	"net/url"
	"strconv"
)

// EncodeQuery serializes the state into vals without touching query
// parameters it does not own, so unrelated keys on a shared link survive.
// Defaults are omitted to keep links short.
func EncodeQuery(s State, existing url.Values) url.Values {
	vals := url.Values{}
	for k, vs := range existing {
		vals[k] = append([]string(nil), vs...)
	}

	if s.Query != "" {
		vals.Set("q", s.Query)
	} else {
		vals.Del("q")
	}
	if s.CategoryID > 0 {
		vals.Set("categoryId", strconv.FormatInt(s.CategoryID, 10))
	} else {
		vals.Del("categoryId")
	}
	if s.Sort != SortNewest {
		vals.Set("sortBy", s.Sort)
	} else {
		vals.Del("sortBy")
	}
	if s.Page > 1 {
		vals.Set("page", strconv.Itoa(s.Page))
	} else {
		vals.Del("page")
	}
	if s.PerPage != DefaultPerPage {
		vals.Set("perPage", strconv.Itoa(s.PerPage))
	} else {
		vals.Del("perPage")
	}
	return vals
}

// DecodeQuery rebuilds state from a shared or reloaded link. Unparseable
// values fall back to defaults instead of failing the page load.
func DecodeQuery(vals url.Values) State {
	s := DefaultState()
	if q := vals.Get("q"); q != "" {
		s.SubmitSearch(q)
	}
	if id, err := strconv.ParseInt(vals.Get("categoryId"), 10, 64); err == nil && id > 0 {
		s.CategoryID = id
	}
	if c := vals.Get("sortBy"); validSort(c) {
		s.Sort = c
	}
	if n, err := strconv.Atoi(vals.Get("page")); err == nil && n >= 1 {
		s.Page = n
	}
	if n, err := strconv.Atoi(vals.Get("perPage")); err == nil && n >= 1 {
		s.PerPage = n
	}
	return s
}
