// Package storage defines the persistence contracts the chat core and the
// REST surface depend on. Implementations live in subpackages.
package storage

import (
	"context"
	"errors"

	"github.com/dkeye/Parley/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// UserStore persists accounts. The password hash is handled here and never
// crosses into the domain entity.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User, passwordHash string) error
	UserByUsername(ctx context.Context, username string) (*domain.User, string, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// MessageStore persists chat messages and serves history queries.
// Save methods assign the id and sent timestamp and return the full record,
// so fan-out always carries stable identifiers.
type MessageStore interface {
	SaveRoomMessage(ctx context.Context, sender string, room domain.RoomName, body string) (domain.RoomMessage, error)
	RoomHistory(ctx context.Context, room domain.RoomName) ([]domain.RoomMessage, error)
	SaveDirectMessage(ctx context.Context, sender, recipient, body string) (domain.DirectMessage, error)
	DirectHistory(ctx context.Context, userA, userB string) ([]domain.DirectMessage, error)
}

// Store is the full persistence surface wired at startup.
type Store interface {
	UserStore
	MessageStore
	Close() error
}
