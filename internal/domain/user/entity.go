package user

import "time"

// User represents an account that can authenticate against the API.
type User struct {
	ID           int64     // ID is the unique identifier for the user
	Name         string    // Name is the display name of the user
	Email        string    // Email is the unique login key of the user
	PasswordHash string    // PasswordHash is the bcrypt hash of the secret, never exposed
	APIToken     *string   // APIToken is the current bearer token, nil until issued or after logout
	CreatedAt    time.Time // CreatedAt is when the account was registered
	UpdatedAt    time.Time // UpdatedAt is the last modification time
}

// HasToken reports whether the user currently holds a bearer token.
func (u *User) HasToken() bool {
	return u.APIToken != nil && *u.APIToken != ""
}
