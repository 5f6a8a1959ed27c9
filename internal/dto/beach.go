package dto

// SearchQuery is the free-text part of GET /beaches/search.
type SearchQuery struct {
	Q string `form:"q" binding:"max=100"`
}
