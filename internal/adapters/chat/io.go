package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/Parley/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *ChatWSController) writePump(ctx context.Context, c *wsChatConn) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "chat").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "chat").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "chat").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "chat").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *ChatWSController) readPump(ctx context.Context, sid core.SessionID, c *wsChatConn) {
	defer func() {
		log.Info().Str("module", "chat").Str("sid", string(sid)).Msg("readPump closing")
		ctl.Coord.Disconnect(sid)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "chat").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "chat").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			ctl.handleFrame(ctx, sid, c, data)
		}
	}
}

func (ctl *ChatWSController) handleFrame(ctx context.Context, sid core.SessionID, c *wsChatConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("bad json")
		return
	}

	switch env.Type {
	case "join":
		ctl.handleJoin(sid, data)
	case "leave":
		ctl.handleLeave(sid, data)
	case "message":
		ctl.handleMessage(ctx, sid, data)
	case "direct_message":
		ctl.handleDirectMessage(ctx, sid, data)
	case "typing":
		ctl.handleTyping(sid, data)
	case "direct_typing":
		ctl.handleDirectTyping(sid, data)
	case "whoami":
		ctl.handleWhoAmI(sid, c)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "chat").Str("type", env.Type).Msg("unknown frame")
	}
}

func (ctl *ChatWSController) sendJSON(c *wsChatConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
