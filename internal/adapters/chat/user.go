package chat

import (
	"context"
	"encoding/json"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *ChatWSController) handleDirectMessage(ctx context.Context, sid core.SessionID, data []byte) {
	type directPayload struct {
		Type string `json:"type"`
		From string `json:"from_user"`
		To   string `json:"to_user"`
		Body string `json:"message"`
	}
	var p directPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("bad direct message payload")
		return
	}
	if p.To == "" {
		return
	}
	ctl.Coord.RouteDirectMessage(ctx, sid, p.From, p.To, p.Body)
}

func (ctl *ChatWSController) handleDirectTyping(sid core.SessionID, data []byte) {
	type directTypingPayload struct {
		Type string `json:"type"`
		From string `json:"from_user"`
		To   string `json:"to_user"`
	}
	var p directTypingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("bad direct typing payload")
		return
	}
	ctl.Coord.RelayDirectTyping(p.From, p.To)
}

func (ctl *ChatWSController) handleWhoAmI(sid core.SessionID, conn *wsChatConn) {
	username, room, ok := ctl.Coord.Registry.Lookup(sid)
	if !ok {
		log.Warn().Str("module", "chat").Str("sid", string(sid)).Msg("whoami for unknown session")
		return
	}
	resp := struct {
		Type     string          `json:"type"`
		Username string          `json:"username,omitempty"`
		Room     domain.RoomName `json:"room,omitempty"`
	}{
		Type:     "whoami",
		Username: username,
		Room:     room,
	}
	ctl.sendJSON(conn, resp)
}
