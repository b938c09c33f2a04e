package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat represents a 1-on-1 advising conversation between a student and an advisor.
// It holds the state of the conversation, including participants and its active status.
type Chat struct {
	// ChatID is the unique identifier for the chat (UUID).
	ChatID string `gorm:"primaryKey" json:"chat_id"`
	// StudentID is the ID of the student participant. Immutable after creation.
	StudentID string `gorm:"type:text;not null;index:idx_chat_pair" json:"student_id"`
	// AdvisorID is the ID of the advisor participant. Immutable after creation.
	AdvisorID string `gorm:"type:text;not null;index:idx_chat_pair" json:"advisor_id"`
	// AppointmentID references the appointment this chat is bound to, if any.
	// Chats without a bound appointment are general-purpose and never time-gated.
	AppointmentID *uint `gorm:"index" json:"appointment_id,omitempty"`
	// IsActive indicates whether the chat still accepts new messages.
	IsActive bool `json:"is_active"`
	// StartedAt is the timestamp when the chat was created.
	StartedAt time.Time `json:"started_at"`
	// EndedAt is the timestamp when the chat was closed; nil while the chat is open.
	EndedAt *time.Time `json:"ended_at,omitempty"`
	// UpdatedAt is refreshed on creation and on every message append.
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// BeforeCreate генерує новий UUID для чату, якщо ChatID ще не встановлено.
func (c *Chat) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ChatID == "" {
		c.ChatID = uuid.New().String()
	}
	return
}

// HasParticipant reports whether userID is one of the two chat participants.
func (c *Chat) HasParticipant(userID string) bool {
	return userID == c.StudentID || userID == c.AdvisorID
}
