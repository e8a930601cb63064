package app

import (
	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

// BroadcastRoster sends the current member list of roomName to everyone in
// the room. Always computed from the table after the triggering mutation.
func (c *Coordinator) BroadcastRoster(roomName domain.RoomName) {
	frame, ok := marshalEvent(rosterEvent{
		Type:  "roster",
		Room:  roomName,
		Users: c.Rooms.MembersOf(roomName),
	})
	if !ok {
		return
	}
	c.sendToRoom(roomName, frame)
}

// BroadcastTyping relays a typing-start signal to the room, minus the
// originating connection. One signal per received event; debouncing is the
// sending client's job, timeout is the receiver's.
func (c *Coordinator) BroadcastTyping(sid core.SessionID, roomName domain.RoomName, username string) {
	frame, ok := marshalEvent(typingEvent{Type: "typing", Room: roomName, Username: username})
	if !ok {
		return
	}
	c.sendToRoomExcept(roomName, sid, frame)
}

// RelayDirectTyping sends a typing-start signal to the recipient's live
// connections only; the sender gets no echo.
func (c *Coordinator) RelayDirectTyping(sender, recipient string) {
	frame, ok := marshalEvent(directTypingEvent{Type: "direct_typing", From: sender})
	if !ok {
		return
	}
	c.sendToUser(recipient, frame)
}
