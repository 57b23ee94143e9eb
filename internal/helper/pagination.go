package helper

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

// ParsePagination reads page and limit query values. Missing or malformed values
// fall back to the defaults.
func ParsePagination(pageStr, limitStr string) (int, int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = 0
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit = 0
	}

	return NormalizePage(page, limit)
}

// NormalizePage applies defaults to zero values, clamps limit to [1, MaxLimit] and
// caps page so the resulting skip fits in an int64.
func NormalizePage(page, limit int) (int, int) {
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}

	if page < 1 {
		page = DefaultPage
	}
	if maxPage := maxPageFor(limit); int64(page) > maxPage {
		page = int(maxPage)
	}

	return page, limit
}

func maxPageFor(limit int) int64 {
	if limit < 1 {
		limit = 1
	}
	pages := math.MaxInt64 / int64(limit)
	if pages > math.MaxInt {
		pages = math.MaxInt
	}
	return pages
}

// Skip returns the number of documents before page. It never goes negative.
func Skip(page, limit int) int64 {
	if limit < 1 {
		return 0
	}
	if page < 1 {
		page = 1
	}
	if maxPage := maxPageFor(limit); int64(page) > maxPage {
		page = int(maxPage)
	}
	return int64(page-1) * int64(limit)
}
