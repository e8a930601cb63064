package app

import (
	"encoding/json"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
	"github.com/rs/zerolog/log"
)

// Outbound wire payloads. Every event carries a "type" envelope field so
// clients can dispatch the same way the server does on inbound frames.

type rosterEvent struct {
	Type  string          `json:"type"`
	Room  domain.RoomName `json:"room"`
	Users []string        `json:"users"`
}

type systemEvent struct {
	Type string          `json:"type"`
	Room domain.RoomName `json:"room"`
	Text string          `json:"message"`
}

type roomMessageEvent struct {
	Type    string             `json:"type"`
	Message domain.RoomMessage `json:"message"`
}

type directMessageEvent struct {
	Type    string               `json:"type"`
	Message domain.DirectMessage `json:"message"`
}

type typingEvent struct {
	Type     string          `json:"type"`
	Room     domain.RoomName `json:"room"`
	Username string          `json:"username"`
}

type directTypingEvent struct {
	Type string `json:"type"`
	From string `json:"from_user"`
}

type errorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func marshalEvent(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.events").Msg("marshal event")
		return nil, false
	}
	return b, true
}
