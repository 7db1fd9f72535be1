// Package pagination implements the page-number paginator used by every
// post feed. Pages are 1-based; invalid or out-of-range requests resolve
// to the nearest valid page instead of failing.
package pagination

import "strconv"

// Paginator describes one page of an ordered result set together with
// the metadata needed to render pagination controls.
type Paginator struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// New builds a Paginator for the requested page. A request below 1
// clamps to the first page, a request beyond the last page clamps to the
// last page, and an empty result set yields a single empty page 1.
func New(requested, size int, totalItems int64) Paginator {
	if size <= 0 {
		size = 10
	}

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Paginator{
		Number:     number,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
	}
}

// Offset returns the row offset of the page's first item.
func (p Paginator) Offset() int {
	return (p.Number - 1) * p.Size
}

// ParsePage interprets a raw page query parameter. Absent or unparseable
// input defaults to page 1; the upper clamp happens in New once the
// total is known.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
