package constants

// HTTP Header Names
const (
	HeaderAuthorization   = "Authorization"
	HeaderXRequestID      = "X-Request-ID"
	HeaderXForwardedFor   = "X-Forwarded-For"
	HeaderXForwardedProto = "X-Forwarded-Proto"
	HeaderXRealIP         = "X-Real-IP"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized     = "Unauthorized access"
	MsgForbidden        = "Access forbidden"
	MsgRouteNotFound    = "Route not found"
	MsgBadRequest       = "Invalid request"
	MsgInternalError    = "Internal server error"
	MsgTooMany          = "Too many requests"
	MsgInvalidJSON      = "Invalid JSON body"
	MsgValidationFailed = "Validation failed"
)

// HTTP Success Messages
const (
	MsgCreated   = "Resource created successfully"
	MsgUpdated   = "Resource updated successfully"
	MsgLoggedOut = "Logged out successfully"
)
