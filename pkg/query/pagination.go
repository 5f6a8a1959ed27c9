package query

import (
	"math"
	"net/url"
	"strconv"
)

// PaginationConfig bounds the page size.
type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// PageRequest is a normalized page/limit pair; Page >= 1 and
// 1 <= Limit <= MaxLimit always hold.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset is never negative; it saturates at math.MaxInt instead of
// overflowing.
func (r PageRequest) Offset() int {
	if r.Page < 1 || r.Limit < 1 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// maxPage is the largest page whose offset still fits in an int.
func maxPage(limit int) int {
	return math.MaxInt/limit + 1
}

// Pagination is the metadata block returned with every list.
type Pagination struct {
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	TotalCount  int64   `json:"totalCount"`
	NextPage    *string `json:"nextPage"`
	Limit       int     `json:"limit"`
}

// NormalizePage never fails: missing, non-numeric or out-of-range input
// falls back to page 1 and the default limit, and the limit is capped.
func NormalizePage(rawPage, rawLimit string, cfg PaginationConfig) PageRequest {
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 1
	}
	maxLimit := cfg.MaxLimit
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}

	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page > maxPage(limit) {
		page = maxPage(limit)
	}

	return PageRequest{Page: page, Limit: limit}
}

// Paginate computes the metadata for req given the number of matching rows.
// baseURL is scheme, host and path; query holds the original parameters,
// which are all carried into nextPage.
func Paginate(req PageRequest, totalCount int64, baseURL string, query url.Values) Pagination {
	limit := req.Limit
	if limit < 1 {
		limit = 1
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(limit) - 1) / int64(limit))
	}

	p := Pagination{
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		Limit:       limit,
	}

	if req.Page < totalPages {
		next := NextPageURL(baseURL, query, req.Page+1, limit)
		p.NextPage = &next
	}

	return p
}

// NextPageURL rebuilds baseURL with query, overriding page and limit.
func NextPageURL(baseURL string, query url.Values, page, limit int) string {
	values := make(url.Values, len(query)+2)
	for k, v := range query {
		values[k] = append([]string(nil), v...)
	}
	values.Set("page", strconv.Itoa(page))
	values.Set("limit", strconv.Itoa(limit))

	return baseURL + "?" + values.Encode()
}
