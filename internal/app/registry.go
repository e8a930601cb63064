package app

import (
	"context"
	"sync"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Username string
	RoomName domain.RoomName
	Conn     core.SignalConnection
	Cancel   context.CancelFunc
}

// Registry tracks every live connection: its bound username, its current
// room pointer (at most one) and its transport session. It also keeps a
// username index so direct-message fan-out never scans all sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
	byUser   map[string]map[core.SessionID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		byUser:   make(map[string]map[core.SessionID]struct{}),
	}
}

// Bind registers a new connection with no username and no room.
func (r *Registry) Bind(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound session")
}

// SetUsername binds a display name to the connection. Last write wins.
func (r *Registry) SetUsername(sid core.SessionID, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return
	}
	if entry.Username == username {
		return
	}
	r.unindexLocked(sid, entry.Username)
	entry.Username = username
	if username != "" {
		if _, ok := r.byUser[username]; !ok {
			r.byUser[username] = make(map[core.SessionID]struct{})
		}
		r.byUser[username][sid] = struct{}{}
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("username", username).Msg("updated username")
}

func (r *Registry) unindexLocked(sid core.SessionID, username string) {
	if username == "" {
		return
	}
	if sids, ok := r.byUser[username]; ok {
		delete(sids, sid)
		if len(sids) == 0 {
			delete(r.byUser, username)
		}
	}
}

// Lookup returns the connection's current username and room.
func (r *Registry) Lookup(sid core.SessionID) (username string, room domain.RoomName, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, found := r.sessions[sid]
	if !found {
		return "", "", false
	}
	return entry.Username, entry.RoomName, true
}

// RoomOf reports the room the connection currently occupies, if any.
func (r *Registry) RoomOf(sid core.SessionID) (domain.RoomName, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok || entry.RoomName == "" {
		return "", false
	}
	return entry.RoomName, true
}

// UpdateRoom points the connection at a new room.
func (r *Registry) UpdateRoom(sid core.SessionID, room domain.RoomName) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return false
	}
	entry.RoomName = room
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(room)).Msg("updated room")
	return true
}

// ClearRoom drops the connection's room pointer without removing the entry.
func (r *Registry) ClearRoom(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.sessions[sid]; ok {
		entry.RoomName = ""
	}
}

// Unbind deletes the entry. Room cleanup is the coordinator's job beforehand.
func (r *Registry) Unbind(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.sessions[sid]; ok {
		r.unindexLocked(sid, entry.Username)
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
}

type regSnap struct {
	SID  core.SessionID
	Conn core.SignalConnection
}

// MembersOfRoom snapshots the sessions whose room pointer equals name.
func (r *Registry) MembersOfRoom(name domain.RoomName) []regSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]regSnap, 0, len(r.sessions))
	for sid, e := range r.sessions {
		if e.RoomName == name {
			out = append(out, regSnap{SID: sid, Conn: e.Conn})
		}
	}
	return out
}

// SessionsOfUser snapshots every live session bound to username.
func (r *Registry) SessionsOfUser(username string) []regSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sids, ok := r.byUser[username]
	if !ok {
		return nil
	}
	out := make([]regSnap, 0, len(sids))
	for sid := range sids {
		if e, found := r.sessions[sid]; found {
			out = append(out, regSnap{SID: sid, Conn: e.Conn})
		}
	}
	return out
}

// Conn returns the transport connection for sid.
func (r *Registry) Conn(sid core.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

// Cancel fires the connection-scoped cancel func, if any.
func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	return true
}
