package models

import "time"

// User is a row of the users table. PasswordHash is never serialised.
type User struct {
	ID           int64     `json:"userId"`
	UserName     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Credentials is the register/login request body. Password must not be
// logged or stored; it only lives for the duration of the request.
type Credentials struct {
	UserName string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Identity is what the access gate attaches to an authenticated request.
type Identity struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"username"`
}
