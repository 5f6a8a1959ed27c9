package constants

// Standard Response Field Keys
const (
	ResponseFieldStatus     = "status"
	ResponseFieldData       = "data"
	ResponseFieldPagination = "pagination"
	ResponseFieldMessage    = "message"
	ResponseFieldDetails    = "details"
)

// BuildListResponse is the envelope of every paginated endpoint.
func BuildListResponse(status int, data any, pagination any) map[string]any {
	return map[string]any{
		ResponseFieldStatus:     status,
		ResponseFieldData:       data,
		ResponseFieldPagination: pagination,
	}
}

func BuildDataResponse(status int, data any) map[string]any {
	return map[string]any{
		ResponseFieldStatus: status,
		ResponseFieldData:   data,
	}
}

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
	}
}
