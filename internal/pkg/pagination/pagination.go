// Package pagination bounds catalog listings.
package pagination

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type Params struct {
	Page    int
	PerPage int
}

// NewParams clamps page and perPage into the supported range.
func NewParams(page, perPage int) Params {
	return Params{
		Page:    max(page, DefaultPage),
		PerPage: clamp(perPage, 1, MaxPerPage, DefaultPerPage),
	}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Params) Limit() int {
	return p.PerPage
}

type Info struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"perPage"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewInfo describes page within totalItems. An empty listing still has one page.
func NewInfo(page, perPage, totalItems int) *Info {
	totalPages := max(1, (totalItems+perPage-1)/perPage)

	return &Info{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func clamp(v, lo, hi, fallback int) int {
	switch {
	case v < lo:
		return fallback
	case v > hi:
		return hi
	default:
		return v
	}
}
