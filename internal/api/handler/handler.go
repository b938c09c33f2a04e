package handler

import (
	"advisorlink/backend/internal/chat"
	"advisorlink/backend/internal/localization"
)

// Handler містить посилання на chat.Service та залежності API-шару
type Handler struct {
	Chat      *chat.Service
	Localizer *localization.Localizer
	JWTSecret []byte
}

func NewHandler(chatSvc *chat.Service, loc *localization.Localizer, jwtSecret []byte) *Handler {
	return &Handler{
		Chat:      chatSvc,
		Localizer: loc,
		JWTSecret: jwtSecret,
	}
}
