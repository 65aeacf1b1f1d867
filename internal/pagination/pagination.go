// Package pagination implements page/limit paging for list endpoints.
package pagination

// Params is a page request. A zero value means "everything on one page".
type Params struct {
	Page  int
	Limit int
}

// Requested reports whether the caller asked for a specific page.
func (p Params) Requested() bool {
	return p.Page > 0 && p.Limit > 0
}

// Valid reports whether page and limit were given together and are positive.
func (p Params) Valid() bool {
	if p.Page == 0 && p.Limit == 0 {
		return true
	}

	return p.Page > 0 && p.Limit > 0
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	if !p.Requested() {
		return 0
	}

	return (p.Page - 1) * p.Limit
}

type PageInfo struct {
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	TotalResults   int  `json:"totalResults"`
	ResultsPerPage int  `json:"resultsPerPage"`
	NextPage       *int `json:"nextPage"`
	PrevPage       *int `json:"prevPage"`
}

// Build returns nil when no page was requested.
func Build(p Params, total int) *PageInfo {
	if !p.Requested() {
		return nil
	}

	totalPages := (total + p.Limit - 1) / p.Limit

	info := &PageInfo{
		CurrentPage:    p.Page,
		TotalPages:     totalPages,
		TotalResults:   total,
		ResultsPerPage: p.Limit,
	}

	if p.Page < totalPages {
		info.NextPage = new(p.Page + 1)
	}

	if p.Page > 1 {
		info.PrevPage = new(p.Page - 1)
	}

	return info
}
