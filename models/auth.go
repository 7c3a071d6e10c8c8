// models/auth.go

package models

// LoginRequest accepts either an email (tourists, providers) or a username (admins)
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// AuthResponse is returned by login and signup
type AuthResponse struct {
	Token   string `json:"token"`
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

// Identity is the authenticated caller decoded from a bearer token
type Identity struct {
	UserID string `json:"id"`
	Role   Role   `json:"role"`
}
