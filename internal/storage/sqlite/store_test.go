package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dkeye/Parley/internal/domain"
	"github.com/dkeye/Parley/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("Open() with blank path should fail")
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	user, err := domain.NewUser("alice", "Alice", "Smith")
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	if err := store.CreateUser(ctx, user, "hash123"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	got, hash, err := store.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("UserByUsername() error = %v", err)
	}
	if got.ID != user.ID || got.FirstName != "Alice" || got.LastName != "Smith" {
		t.Errorf("UserByUsername() = %+v, want %+v", got, user)
	}
	if hash != "hash123" {
		t.Errorf("hash = %q, want hash123", hash)
	}

	if _, _, err := store.UserByUsername(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("unknown user error = %v, want ErrNotFound", err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, _ := domain.NewUser("alice", "A", "B")
	second, _ := domain.NewUser("alice", "C", "D")
	if err := store.CreateUser(ctx, first, "h1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := store.CreateUser(ctx, second, "h2"); !errors.Is(err, storage.ErrUsernameTaken) {
		t.Errorf("duplicate CreateUser() error = %v, want ErrUsernameTaken", err)
	}
}

func TestListUsers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"carol", "alice", "bob"} {
		user, _ := domain.NewUser(name, "F", "L")
		if err := store.CreateUser(ctx, user, "h"); err != nil {
			t.Fatalf("CreateUser(%s) error = %v", name, err)
		}
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("ListUsers() len = %d, want 3", len(users))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if users[i].Username != want {
			t.Errorf("users[%d] = %q, want %q", i, users[i].Username, want)
		}
	}
}

func TestRoomMessageHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.SaveRoomMessage(ctx, "alice", "sports", "hello")
	if err != nil {
		t.Fatalf("SaveRoomMessage() error = %v", err)
	}
	if first.ID == "" || first.SentAt.IsZero() {
		t.Error("saved record must carry id and timestamp")
	}
	if _, err := store.SaveRoomMessage(ctx, "bob", "sports", "hey"); err != nil {
		t.Fatalf("SaveRoomMessage() error = %v", err)
	}
	if _, err := store.SaveRoomMessage(ctx, "carol", "devops", "other room"); err != nil {
		t.Fatalf("SaveRoomMessage() error = %v", err)
	}

	history, err := store.RoomHistory(ctx, "sports")
	if err != nil {
		t.Fatalf("RoomHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("RoomHistory() len = %d, want 2", len(history))
	}
	if history[0].Body != "hello" || history[1].Body != "hey" {
		t.Errorf("history order = [%q, %q], want oldest first", history[0].Body, history[1].Body)
	}
}

func TestDirectHistoryBothDirections(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.SaveDirectMessage(ctx, "alice", "bob", "hi bob"); err != nil {
		t.Fatalf("SaveDirectMessage() error = %v", err)
	}
	if _, err := store.SaveDirectMessage(ctx, "bob", "alice", "hi alice"); err != nil {
		t.Fatalf("SaveDirectMessage() error = %v", err)
	}
	if _, err := store.SaveDirectMessage(ctx, "alice", "carol", "unrelated"); err != nil {
		t.Fatalf("SaveDirectMessage() error = %v", err)
	}

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		history, err := store.DirectHistory(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("DirectHistory(%v) error = %v", pair, err)
		}
		if len(history) != 2 {
			t.Fatalf("DirectHistory(%v) len = %d, want 2", pair, len(history))
		}
		if history[0].Body != "hi bob" || history[1].Body != "hi alice" {
			t.Errorf("DirectHistory(%v) order = [%q, %q]", pair, history[0].Body, history[1].Body)
		}
	}
}
