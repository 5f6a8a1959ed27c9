package dto

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Username string `json:"username" binding:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

// UpdateMeRequest only carries the fields a user may change on themself.
// Empty fields are left untouched.
type UpdateMeRequest struct {
	Name      string `json:"name" binding:"omitempty,min=2,max=100"`
	Username  string `json:"username" binding:"omitempty,min=3,max=30,alphanum"`
	Email     string `json:"email" binding:"omitempty,email,max=255"`
	AvatarURL string `json:"avatarUrl" binding:"omitempty,url,max=2048"`
}

func (r UpdateMeRequest) IsEmpty() bool {
	return r.Name == "" && r.Username == "" && r.Email == "" && r.AvatarURL == ""
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type UserResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserLoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"` // access token lifetime in seconds
	User         UserResponse `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleUser is the payload of Google's userinfo endpoint.
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// LoginMeta describes where a login came from; it is stored on the session.
type LoginMeta struct {
	ClientIP  string
	UserAgent string
}
