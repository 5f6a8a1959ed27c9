package constants

const (
	AppName    = "Playea Beach API"
	AppVersion = "1.0.0"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// OAuth
const (
	OAuthStateCookie = "oauth_state"
	OAuthStateMaxAge = 10 * 60 // seconds
)
