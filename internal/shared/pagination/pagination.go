// Package pagination holds the page arithmetic shared by every list screen.
package pagination

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Cursor is the client-visible pagination state of a list screen.
type Cursor struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"pageSize" query:"pageSize"`
}

// Normalize returns a cursor with page >= 1 and 1 <= pageSize <= MaxPageSize.
func (c Cursor) Normalize() Cursor {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PageSize < 1 {
		c.PageSize = DefaultPageSize
	}
	if c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	return c
}

// TotalPages is ceil(total / pageSize); zero items yield zero pages.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// Bounds returns the half-open [start, end) window of the given page over total
// items. Pages past the end yield an empty window.
func Bounds(page, pageSize, total int) (start, end int) {
	if page < 1 || pageSize < 1 {
		return 0, 0
	}
	start = (page - 1) * pageSize
	if start >= total {
		return total, total
	}
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

// Slice returns the records shown on the given page. The result never holds more
// than pageSize elements.
func Slice[T any](items []T, page, pageSize int) []T {
	start, end := Bounds(page, pageSize, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// Clamp keeps page inside [1, max(1, totalPages)].
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
