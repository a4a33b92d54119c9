// Package models defines server-side data models shared by storage,
// services and transports.
package models

// User is an account holder. PasswordHash is a bcrypt hash; transports
// never serialise it to clients.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}
