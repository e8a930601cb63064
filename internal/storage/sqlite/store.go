// Package sqlite provides the SQLite-backed chat store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dkeye/Parley/internal/domain"
	"github.com/dkeye/Parley/internal/storage"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const historyLimit = 200

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS room_messages (
    id TEXT PRIMARY KEY,
    sender TEXT NOT NULL,
    room TEXT NOT NULL,
    body TEXT NOT NULL,
    sent_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_room_messages_room ON room_messages(room, sent_at);

CREATE TABLE IF NOT EXISTS direct_messages (
    id TEXT PRIMARY KEY,
    sender TEXT NOT NULL,
    recipient TEXT NOT NULL,
    body TEXT NOT NULL,
    sent_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_direct_messages_pair ON direct_messages(sender, recipient, sent_at);
`

// Store persists users and messages in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the store at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateUser inserts one account record.
func (s *Store) CreateUser(ctx context.Context, user *domain.User, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (id, username, first_name, last_name, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(user.ID),
		user.Username,
		user.FirstName,
		user.LastName,
		passwordHash,
		toMillis(user.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UserByUsername returns the account and its password hash.
func (s *Store) UserByUsername(ctx context.Context, username string) (*domain.User, string, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, username, first_name, last_name, password_hash, created_at
		 FROM users WHERE username = ?`,
		username,
	)
	var (
		user      domain.User
		hash      string
		createdAt int64
	)
	if err := row.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &hash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", storage.ErrNotFound
		}
		return nil, "", fmt.Errorf("select user: %w", err)
	}
	user.CreatedAt = fromMillis(createdAt)
	return &user, hash, nil
}

// ListUsers returns all accounts ordered by username.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, username, first_name, last_name, created_at FROM users ORDER BY username`,
	)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var (
			user      domain.User
			createdAt int64
		)
		if err := rows.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		user.CreatedAt = fromMillis(createdAt)
		out = append(out, user)
	}
	return out, rows.Err()
}

// SaveRoomMessage stores one room broadcast and returns the full record.
func (s *Store) SaveRoomMessage(ctx context.Context, sender string, room domain.RoomName, body string) (domain.RoomMessage, error) {
	msg := domain.RoomMessage{
		ID:     uuid.NewString(),
		Sender: sender,
		Room:   room,
		Body:   body,
		SentAt: time.Now().UTC(),
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO room_messages (id, sender, room, body, sent_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.Sender, string(msg.Room), msg.Body, toMillis(msg.SentAt),
	)
	if err != nil {
		return domain.RoomMessage{}, fmt.Errorf("insert room message: %w", err)
	}
	return msg, nil
}

// RoomHistory returns up to 200 messages for a room, oldest first.
func (s *Store) RoomHistory(ctx context.Context, room domain.RoomName) ([]domain.RoomMessage, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, sender, room, body, sent_at FROM room_messages
		 WHERE room = ? ORDER BY sent_at ASC, rowid ASC LIMIT ?`,
		string(room), historyLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("select room history: %w", err)
	}
	defer rows.Close()

	var out []domain.RoomMessage
	for rows.Next() {
		var (
			msg    domain.RoomMessage
			sentAt int64
		)
		if err := rows.Scan(&msg.ID, &msg.Sender, &msg.Room, &msg.Body, &sentAt); err != nil {
			return nil, fmt.Errorf("scan room message: %w", err)
		}
		msg.SentAt = fromMillis(sentAt)
		out = append(out, msg)
	}
	return out, rows.Err()
}

// SaveDirectMessage stores one two-party message and returns the full record.
func (s *Store) SaveDirectMessage(ctx context.Context, sender, recipient, body string) (domain.DirectMessage, error) {
	msg := domain.DirectMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Recipient: recipient,
		Body:      body,
		SentAt:    time.Now().UTC(),
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO direct_messages (id, sender, recipient, body, sent_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.Sender, msg.Recipient, msg.Body, toMillis(msg.SentAt),
	)
	if err != nil {
		return domain.DirectMessage{}, fmt.Errorf("insert direct message: %w", err)
	}
	return msg, nil
}

// DirectHistory returns up to 200 messages exchanged between two users in
// either direction, oldest first.
func (s *Store) DirectHistory(ctx context.Context, userA, userB string) ([]domain.DirectMessage, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, sender, recipient, body, sent_at FROM direct_messages
		 WHERE (sender = ? AND recipient = ?) OR (sender = ? AND recipient = ?)
		 ORDER BY sent_at ASC, rowid ASC LIMIT ?`,
		userA, userB, userB, userA, historyLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("select direct history: %w", err)
	}
	defer rows.Close()

	var out []domain.DirectMessage
	for rows.Next() {
		var (
			msg    domain.DirectMessage
			sentAt int64
		)
		if err := rows.Scan(&msg.ID, &msg.Sender, &msg.Recipient, &msg.Body, &sentAt); err != nil {
			return nil, fmt.Errorf("scan direct message: %w", err)
		}
		msg.SentAt = fromMillis(sentAt)
		out = append(out, msg)
	}
	return out, rows.Err()
}
