// Package auth verifies credentials and issues session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/Parley/internal/domain"
	"github.com/dkeye/Parley/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingFields      = errors.New("all fields are required")
	ErrUsernameTaken      = errors.New("username already exists")
)

// Service handles signup and login against the user store.
type Service struct {
	users  storage.UserStore
	hasher *PasswordHasher
	tokens *TokenManager
}

func NewService(users storage.UserStore, hasher *PasswordHasher, tokens *TokenManager) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// SignUp creates a new account.
func (s *Service) SignUp(ctx context.Context, username, firstName, lastName, password string) (*domain.User, error) {
	if username == "" || firstName == "" || lastName == "" || password == "" {
		return nil, ErrMissingFields
	}
	user, err := domain.NewUser(username, firstName, lastName)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.CreateUser(ctx, user, hash); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// LogIn authenticates a user and returns the account plus a session token.
func (s *Service) LogIn(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	user, hash, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if !s.hasher.Verify(password, hash) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
