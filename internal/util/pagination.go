package util

const DefaultPageSize = 10

// Calculate turns page_num/limit query values into an offset and a
// bounded page size.
func Calculate(pageNum, limit int) (from, size int) {
	if pageNum < 1 {
		pageNum = 1
	}
	if limit <= 0 || limit > 100 {
		limit = DefaultPageSize
	}
	from = (pageNum - 1) * limit
	return from, limit
}
