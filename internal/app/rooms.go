package app

import (
	"sort"
	"sync"

	"github.com/dkeye/Parley/internal/domain"
)

// RoomTable maps room name to the set of usernames currently present.
// A room with zero members is deleted immediately; the table never holds
// empty rooms.
type RoomTable struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName]map[string]struct{}
}

func NewRoomTable() *RoomTable {
	return &RoomTable{rooms: make(map[domain.RoomName]map[string]struct{})}
}

// Join adds username to the room, creating it on first join. Reports
// whether the member was newly added (false on duplicate join).
func (t *RoomTable) Join(room domain.RoomName, username string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	members, ok := t.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		t.rooms[room] = members
	}
	if _, present := members[username]; present {
		return false
	}
	members[username] = struct{}{}
	return true
}

// Leave removes username; unknown room or non-member is a no-op.
// The room entry is deleted once its last member is gone.
func (t *RoomTable) Leave(room domain.RoomName, username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	members, ok := t.rooms[room]
	if !ok {
		return
	}
	delete(members, username)
	if len(members) == 0 {
		delete(t.rooms, room)
	}
}

// Has reports whether username is currently a member of room.
func (t *RoomTable) Has(room domain.RoomName, username string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rooms[room][username]
	return ok
}

// MembersOf returns the current member set, sorted for a stable roster.
func (t *RoomTable) MembersOf(room domain.RoomName) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	members, ok := t.rooms[room]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(members))
	for username := range members {
		out = append(out, username)
	}
	sort.Strings(out)
	return out
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"member_count"`
}

// List enumerates rooms that currently have members.
func (t *RoomTable) List() []RoomInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]RoomInfo, 0, len(t.rooms))
	for name, members := range t.rooms {
		out = append(out, RoomInfo{Name: name, MemberCount: len(members)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
