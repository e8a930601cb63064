package chat

func (ctl *ChatWSController) handlePing(conn *wsChatConn) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.sendJSON(conn, resp)
}
