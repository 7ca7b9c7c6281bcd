package site

import (
	"net/url"
	"strings"
)

// FilterKind names the active listing filter.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterCategory
	FilterSearch
)

const (
	// CategoryParam selects a category filter.
	CategoryParam = "category"
	// SearchParam selects a search filter.
	SearchParam = "q"
)

// Filter is the single filter applied to a listing.
type Filter struct {
	Kind  FilterKind
	Value string
}

// Category returns a category filter.
func Category(name string) Filter {
	return Filter{Kind: FilterCategory, Value: name}
}

// Search returns a search filter. A blank query is no filter.
func Search(query string) Filter {
	if strings.TrimSpace(query) == "" {
		return Filter{}
	}
	return Filter{Kind: FilterSearch, Value: query}
}

// ActiveCategory returns the category of a category filter.
func (f Filter) ActiveCategory() string {
	if f.Kind == FilterCategory {
		return f.Value
	}
	return ""
}

// Query returns the search text of a search filter.
func (f Filter) Query() string {
	if f.Kind == FilterSearch {
		return f.Value
	}
	return ""
}

// ParseFilter walks rawQuery in order. The last category or q parameter
// decides the filter, so a later search clears an earlier category and the
// other way round. An empty category means ALL.
func ParseFilter(rawQuery string) Filter {
	filter := Filter{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}
		switch key {
		case CategoryParam:
			if strings.TrimSpace(value) == "" {
				filter = Filter{}
			} else {
				filter = Category(value)
			}
		case SearchParam:
			filter = Search(value)
		}
	}
	return filter
}
