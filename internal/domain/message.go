package domain

import "time"

// RoomMessage is a persisted room broadcast. Immutable once stored.
type RoomMessage struct {
	ID     string    `json:"_id"`
	Sender string    `json:"from_user"`
	Room   RoomName  `json:"room"`
	Body   string    `json:"message"`
	SentAt time.Time `json:"date_sent"`
}

// DirectMessage is a persisted two-party message. Stored with an explicit
// direction; history lookup is undirected.
type DirectMessage struct {
	ID        string    `json:"_id"`
	Sender    string    `json:"from_user"`
	Recipient string    `json:"to_user"`
	Body      string    `json:"message"`
	SentAt    time.Time `json:"date_sent"`
}
