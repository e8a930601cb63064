// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	MaxUsernameLen = 36
	MaxNameLen     = 64
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrNameTooLong     = errors.New("name too long")
)

type UserID string

// User is an account identity. The password hash never leaves the storage
// layer; this struct is safe to serialize toward clients.
type User struct {
	ID        UserID    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	CreatedAt time.Time `json:"createdon"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewUser(username, firstName, lastName string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if len(firstName) > MaxNameLen || len(lastName) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	return &User{
		ID:        UserID(uuid.NewString()),
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func ValidateUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}
