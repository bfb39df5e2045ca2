package dto

import "time"

// RegisterRequest is the JSON body for POST /users.
type RegisterRequest struct {
	Phone    string `json:"phone" binding:"required,len=11,numeric"`
	Password string `json:"password" binding:"required"`
	// Optional; defaults to the masked phone when omitted.
	Nickname string `json:"nickname" binding:"omitempty,max=50"`
}

// LoginRequest is the JSON body for POST /users/login.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the safe user shape: no password field, ever.
type UserResponse struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Phone    string `json:"phone"`
	Nickname string `json:"nickname"`
	Token    string `json:"token"`
}
