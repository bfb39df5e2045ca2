package domain

import "time"

// User is the domain entity for an account. PasswordHash never leaves the
// service layer; it is stripped before a User is returned to a caller.
type User struct {
	ID           int64
	Phone        string
	PasswordHash string
	Nickname     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	IsDeleted    bool
}
