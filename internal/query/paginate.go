package query

// Paginate returns the 1-based page of items. Pages before the first are
// clamped to the first; a page past the data, or a non-positive page size,
// yields an empty window.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return []T{}
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// TotalPages is the number of pages needed for total items.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
