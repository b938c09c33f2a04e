package models

import "time"

// MessageEvent is the payload published to Redis Pub/Sub after a message is
// persisted. Downstream consumers (notification workers, activity feeds) subscribe
// to the chat's channel; the chat core itself never consumes these events.
type MessageEvent struct {
	MessageID uint      `json:"message_id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	SentAt    time.Time `json:"sent_at"`
}
