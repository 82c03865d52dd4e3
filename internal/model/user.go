package model

// User represents a row in the users table.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
}

// RegisterRequest represents a registration submission.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

// LoginRequest represents a login submission.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token issued on successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ProfileResponse represents user data safe for API responses (no hash).
type ProfileResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
