package domain

import "time"

// User is a registered identity. PasswordHash is a bcrypt hash; the plaintext
// password is never stored or logged.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest holds parameters for registering a new user.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Validate checks that the request is well-formed.
func (r *RegisterRequest) Validate() error {
	if r.Username == "" {
		return ErrValidation("username is required")
	}
	if r.Password == "" {
		return ErrValidation("password is required")
	}
	return nil
}

// LoginRequest holds the credentials presented at login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that the request is well-formed.
func (r *LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return ErrValidation("username and password are required")
	}
	return nil
}
