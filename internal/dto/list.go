package dto

import (
	"net/url"

	"github.com/playea/beach-api/pkg/query"
)

// ListRequest is what a handler hands to a service for a paginated list:
// the raw query string plus the URL that nextPage links are built from.
type ListRequest struct {
	Query   url.Values
	BaseURL string
}

// ListResult is one page of T with its pagination block.
type ListResult[T any] struct {
	Data       []T
	Pagination query.Pagination
}
