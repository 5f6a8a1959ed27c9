package constants

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	CtxKeyRequestID ContextKey = "request_id"
	CtxKeyUserID    ContextKey = "user_id"
	CtxKeyClientIP  ContextKey = "client_ip"
	CtxKeyUserAgent ContextKey = "user_agent"
	CtxKeyStartTime ContextKey = "start_time"
	CtxKeyModule    ContextKey = "module"
	CtxKeyFunction  ContextKey = "function"
)

// Keys set on *gin.Context by the auth middleware.
const (
	GinKeyUserID        = "user_id"
	GinKeyRole          = "role"
	GinKeyValidatedBody = "validated_body"
)
