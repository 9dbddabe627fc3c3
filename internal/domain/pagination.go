package domain

// MaxPage is the highest page number a listing accepts
const MaxPage = 10000

// PageOffset returns the number of rows to skip before page. Page is clamped
// into [1, MaxPage] so the result never overflows.
func PageOffset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page > MaxPage {
		page = MaxPage
	}
	return (page - 1) * limit
}

// hasMore reports whether rows remain after page when total rows exist
func hasMore(page, limit int, total int64) bool {
	if limit < 1 || total <= 0 {
		return false
	}
	pages := (total-1)/int64(limit) + 1
	return int64(page) < pages
}
