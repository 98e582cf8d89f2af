package ranking

import (
	"math"

	"github.com/linkup-social/linkup/apperr"
)

const maxPageLimit = 100

// PageRequest carries the 1-based page number and page size of a ranked
// retrieval.
type PageRequest struct {
	Page  int
	Limit int
}

// Pagination is the uniform pagination envelope returned alongside every
// ranked result list.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasMore     bool `json:"hasMore"`
}

// Sanitize validates the request and caps the limit. Non-positive page or
// limit is an InvalidArgument; a limit above the cap is silently clamped.
func (p PageRequest) Sanitize() (PageRequest, error) {
	if p.Page < 1 {
		return p, apperr.InvalidArgument("page must be >= 1")
	}
	if p.Limit < 1 {
		return p, apperr.InvalidArgument("limit must be >= 1")
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p, nil
}

// Slice returns the [start, end) bounds of the requested page over a sorted
// list of length total, plus the filled-in pagination envelope. A page past
// the end yields an empty slice with HasMore false.
func Slice(total int, p PageRequest) (start, end int, pg Pagination) {
	start = (p.Page - 1) * p.Limit
	end = start + p.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	pg = Pagination{
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasMore:     end < total,
	}
	return start, end, pg
}
