package utils

import "strconv"

// Ellipsis is the gap marker used in a page-number window.
const Ellipsis = "..."

// windowSize is the fixed number of slots shown once paging overflows.
const windowSize = 7

// ClampPage reports whether page is a valid target given totalPages.
// Out-of-range navigation is a no-op for callers.
func ClampPage(page, totalPages int) bool {
	return page >= 1 && page <= totalPages
}

// TotalPages derives the page count from an item total and page size.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

// PageWindow renders the page-number strip for a pager: all pages when they
// fit in seven slots, otherwise a fixed window anchored on the current page.
//
//	total=10 current=1  -> 1 2 3 4 5 ... 10
//	total=10 current=10 -> 1 ... 6 7 8 9 10
//	total=10 current=5  -> 1 ... 4 5 6 ... 10
func PageWindow(totalPages, currentPage int) []string {
	if totalPages <= windowSize {
		pages := make([]string, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, strconv.Itoa(i))
		}
		return pages
	}

	if currentPage <= 4 {
		return []string{"1", "2", "3", "4", "5", Ellipsis, strconv.Itoa(totalPages)}
	}

	if currentPage >= totalPages-3 {
		return []string{
			"1", Ellipsis,
			strconv.Itoa(totalPages - 4),
			strconv.Itoa(totalPages - 3),
			strconv.Itoa(totalPages - 2),
			strconv.Itoa(totalPages - 1),
			strconv.Itoa(totalPages),
		}
	}

	return []string{
		"1", Ellipsis,
		strconv.Itoa(currentPage - 1),
		strconv.Itoa(currentPage),
		strconv.Itoa(currentPage + 1),
		Ellipsis,
		strconv.Itoa(totalPages),
	}
}
