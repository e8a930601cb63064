package app

import (
	"context"
	"strings"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
	"github.com/rs/zerolog/log"
)

// RouteRoomMessage persists a room broadcast, then fans the stored record
// out to every connection in the room, the sender included. Persistence
// happens first so the delivered record already carries its id and
// timestamp. A body that trims to empty is dropped without emission.
func (c *Coordinator) RouteRoomMessage(ctx context.Context, sid core.SessionID, sender string, roomName domain.RoomName, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	msg, err := c.Store.SaveRoomMessage(ctx, sender, roomName, body)
	if err != nil {
		log.Error().Err(err).Str("module", "app.messages").Str("room", string(roomName)).Msg("save room message")
		c.ackNotDelivered(sid)
		return
	}
	frame, ok := marshalEvent(roomMessageEvent{Type: "chat_message", Message: msg})
	if !ok {
		return
	}
	c.sendToRoom(roomName, frame)
}

// RouteDirectMessage persists a two-party message and delivers the stored
// record to every live connection bound to the sender or the recipient.
// A recipient with no live connections simply misses the live event;
// history queries are the recovery path.
func (c *Coordinator) RouteDirectMessage(ctx context.Context, sid core.SessionID, sender, recipient, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	msg, err := c.Store.SaveDirectMessage(ctx, sender, recipient, body)
	if err != nil {
		log.Error().Err(err).Str("module", "app.messages").Str("to", recipient).Msg("save direct message")
		c.ackNotDelivered(sid)
		return
	}
	frame, ok := marshalEvent(directMessageEvent{Type: "direct_message", Message: msg})
	if !ok {
		return
	}
	c.sendToUser(sender, frame)
	if recipient != sender {
		c.sendToUser(recipient, frame)
	}
}

// ackNotDelivered tells the sender its message was not stored, so a silent
// persistence failure is at least visible on the sending side.
func (c *Coordinator) ackNotDelivered(sid core.SessionID) {
	frame, ok := marshalEvent(errorEvent{Type: "error", Error: "not_delivered"})
	if !ok {
		return
	}
	c.sendTo(sid, frame)
}
