// Package common defines shared constants and sentinel errors used across
// the shopkeeper server and client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Credential validation errors.
	ErrMissingCredentials = errors.New("missing credential fields")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrUsernameTaken is returned by registration both when the pre-check
	// finds the username and when the store rejects a racing insert.
	ErrUsernameTaken = errors.New("username taken")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. There is deliberately no second variant.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Access gate errors.
	ErrNoCredential        = errors.New("no credential supplied")
	ErrMalformedCredential = errors.New("malformed credential")

	// Token errors (invalid signature, malformed token, expired token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
