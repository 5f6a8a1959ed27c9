package constants

// Pagination Query Parameters
const (
	QueryParamPage  = "page"
	QueryParamLimit = "limit"
)
