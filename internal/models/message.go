package models

import "gorm.io/gorm"

// Message represents a persisted chat message in the PostgreSQL database.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt fields;
// ID is the message identifier and CreatedAt is the server-assigned timestamp
// that defines the message order within a chat (ID breaks timestamp ties, since
// insertion order follows the sequence).
type Message struct {
	gorm.Model

	// ChatID is the identifier of the chat the message belongs to.
	ChatID string `gorm:"type:uuid;not null;index:idx_chat_msg" json:"chat_id"`
	// SenderID is the ID of the participant who sent the message.
	SenderID string `gorm:"type:text;not null;index:idx_chat_msg" json:"sender_id"`
	// Content is the message text, stored trimmed of surrounding whitespace.
	Content string `gorm:"type:text;not null" json:"content"`
}
