package constants

// Username bounds, shared by request validation and generated usernames.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)
