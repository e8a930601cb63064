package app

import (
	"fmt"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
	"github.com/dkeye/Parley/internal/storage"
	"github.com/rs/zerolog/log"
)

// Coordinator orchestrates join/leave/disconnect transitions. It is the only
// writer of the registry and the room table; adapters never mutate them
// directly.
type Coordinator struct {
	Registry *Registry
	Rooms    *RoomTable
	Store    storage.MessageStore
}

func NewCoordinator(reg *Registry, rooms *RoomTable, store storage.MessageStore) *Coordinator {
	return &Coordinator{Registry: reg, Rooms: rooms, Store: store}
}

// Join moves the connection into roomName, leaving its previous room first
// if it occupied one. A join into the occupied room is treated as a re-join:
// membership stays a set, roster and notice are emitted fresh.
func (c *Coordinator) Join(sid core.SessionID, roomName domain.RoomName, username string) {
	if roomName == "" || username == "" {
		log.Warn().Str("module", "app.coordinator").Str("sid", string(sid)).Msg("join dropped, missing room or username")
		return
	}
	prevName, _, ok := c.Registry.Lookup(sid)
	if !ok {
		return
	}

	if prev, inRoom := c.Registry.RoomOf(sid); inRoom && prev != roomName {
		c.leaveRoom(sid, prev, "has left the room.")
	} else if inRoom && prevName != "" && prevName != username {
		// Re-join under a new name must not leave the old name in the set.
		c.Rooms.Leave(roomName, prevName)
	}

	c.Registry.SetUsername(sid, username)
	c.Rooms.Join(roomName, username)
	c.Registry.UpdateRoom(sid, roomName)
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Str("room", string(roomName)).Str("username", username).Msg("joined room")

	c.BroadcastRoster(roomName)
	c.notifyRoom(roomName, sid, fmt.Sprintf("%s has joined the room.", username))
}

// Leave removes the connection from roomName. If the connection is not
// actually in that room this is a silent no-op: disconnect races must not
// produce spurious notices.
func (c *Coordinator) Leave(sid core.SessionID, roomName domain.RoomName) {
	current, ok := c.Registry.RoomOf(sid)
	if !ok || current != roomName {
		return
	}
	c.leaveRoom(sid, roomName, "has left the room.")
}

// Disconnect is the terminal transition: leave whatever room the connection
// occupies (with "disconnected" wording), then drop the registry entry.
// Tolerates connections that never joined a room.
func (c *Coordinator) Disconnect(sid core.SessionID) {
	if roomName, ok := c.Registry.RoomOf(sid); ok {
		c.leaveRoom(sid, roomName, "has disconnected.")
	}
	// Release the connection-scoped context before the entry goes away,
	// otherwise every connection leaks a child of the server context.
	c.Registry.Cancel(sid)
	c.Registry.Unbind(sid)
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Msg("disconnected")
}

// leaveRoom applies the membership change, then emits roster + notice.
// Roster is computed strictly after the mutation, never before.
func (c *Coordinator) leaveRoom(sid core.SessionID, roomName domain.RoomName, wording string) {
	username, _, ok := c.Registry.Lookup(sid)
	if !ok {
		return
	}
	c.Rooms.Leave(roomName, username)
	c.Registry.ClearRoom(sid)
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Str("room", string(roomName)).Msg("left room")

	c.BroadcastRoster(roomName)
	c.notifyRoom(roomName, sid, fmt.Sprintf("%s %s", username, wording))
}

// notifyRoom sends a system notice to every member of the room except the
// acting connection.
func (c *Coordinator) notifyRoom(roomName domain.RoomName, actor core.SessionID, text string) {
	frame, ok := marshalEvent(systemEvent{Type: "system", Room: roomName, Text: text})
	if !ok {
		return
	}
	c.sendToRoomExcept(roomName, actor, frame)
}

func (c *Coordinator) sendToRoom(roomName domain.RoomName, frame core.Frame) {
	for _, snap := range c.Registry.MembersOfRoom(roomName) {
		c.trySend(snap, frame)
	}
}

func (c *Coordinator) sendToRoomExcept(roomName domain.RoomName, except core.SessionID, frame core.Frame) {
	for _, snap := range c.Registry.MembersOfRoom(roomName) {
		if snap.SID == except {
			continue
		}
		c.trySend(snap, frame)
	}
}

func (c *Coordinator) sendToUser(username string, frame core.Frame) int {
	sent := 0
	for _, snap := range c.Registry.SessionsOfUser(username) {
		c.trySend(snap, frame)
		sent++
	}
	return sent
}

func (c *Coordinator) sendTo(sid core.SessionID, frame core.Frame) {
	if conn, ok := c.Registry.Conn(sid); ok {
		if err := conn.TrySend(frame); err != nil {
			log.Warn().Str("module", "app.coordinator").Str("sid", string(sid)).Err(err).Msg("send dropped")
		}
	}
}

// trySend is best-effort: a slow consumer loses the frame, nothing more.
func (c *Coordinator) trySend(snap regSnap, frame core.Frame) {
	if err := snap.Conn.TrySend(frame); err != nil {
		log.Warn().Str("module", "app.coordinator").Str("sid", string(snap.SID)).Err(err).Msg("send dropped")
	}
}
