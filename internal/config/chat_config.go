package config

import "time"

const (
	// Appointment messaging window.
	// A chat bound to an appointment accepts messages from WindowBefore ahead of
	// the scheduled start until WindowAfter past it, both bounds inclusive.
	WindowBefore = 15 * time.Minute
	WindowAfter  = 60 * time.Minute

	// Message content limits (after trimming).
	MinMessageLength = 1
	MaxMessageLength = 4000

	// Auth
	TokenLifetime = 72 * time.Hour
	TokenIssuer   = "advisorlink-service"
)
