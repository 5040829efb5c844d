package shared

// Filter carries common listing options for repository queries
type Filter struct {
	Search   string
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Filters  map[string]any
}

// NewFilter creates an empty filter
func NewFilter() Filter {
	return Filter{Filters: make(map[string]any)}
}

// WithPagination sets page and page size
func (f Filter) WithPagination(page, pageSize int) Filter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// WithSearch sets the free-text search term
func (f Filter) WithSearch(search string) Filter {
	f.Search = search
	return f
}

// WithFilter adds a key/value filter
func (f Filter) WithFilter(key string, value any) Filter {
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	f.Filters[key] = value
	return f
}
