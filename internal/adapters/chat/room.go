package chat

import (
	"context"
	"encoding/json"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *ChatWSController) handleJoin(sid core.SessionID, data []byte) {
	type joinPayload struct {
		Type     string `json:"type"`
		Room     string `json:"room"`
		Username string `json:"username"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("bad join payload")
		return
	}
	if len(p.Room) > domain.MaxRoomNameLen {
		p.Room = p.Room[:domain.MaxRoomNameLen]
	}
	if err := domain.ValidateUsername(p.Username); err != nil {
		log.Warn().Err(err).Str("module", "chat").Str("sid", string(sid)).Msg("join dropped")
		return
	}
	log.Info().Str("module", "chat").Str("sid", string(sid)).Str("room", p.Room).Str("username", p.Username).Msg("join")
	ctl.Coord.Join(sid, domain.RoomName(p.Room), p.Username)
}

func (ctl *ChatWSController) handleLeave(sid core.SessionID, data []byte) {
	type leavePayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
	}
	var p leavePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("bad leave payload")
		return
	}
	log.Info().Str("module", "chat").Str("sid", string(sid)).Str("room", p.Room).Msg("leave")
	ctl.Coord.Leave(sid, domain.RoomName(p.Room))
}

func (ctl *ChatWSController) handleMessage(ctx context.Context, sid core.SessionID, data []byte) {
	type messagePayload struct {
		Type string `json:"type"`
		From string `json:"from_user"`
		Room string `json:"room"`
		Body string `json:"message"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("bad message payload")
		return
	}
	ctl.Coord.RouteRoomMessage(ctx, sid, p.From, domain.RoomName(p.Room), p.Body)
}

func (ctl *ChatWSController) handleTyping(sid core.SessionID, data []byte) {
	type typingPayload struct {
		Type     string `json:"type"`
		Room     string `json:"room"`
		Username string `json:"username"`
	}
	var p typingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("bad typing payload")
		return
	}
	ctl.Coord.BroadcastTyping(sid, domain.RoomName(p.Room), p.Username)
}
