package query

// Paginate slices items into 1-based pages of pageSize and returns the
// requested page plus the total page count, ceil(len/pageSize). An empty
// input yields zero pages (callers hide the pager when total <= 1). An
// out-of-range page yields an empty slice, never an error.
func Paginate[E any](items []E, pageSize, page int) ([]E, int) {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if page < 1 || page > totalPages {
		return []E{}, totalPages
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return items[start:end:end], totalPages
}
