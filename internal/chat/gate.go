package chat

import (
	"strings"
	"time"
	"unicode/utf8"

	"advisorlink/backend/internal/config"
	"advisorlink/backend/internal/models"
)

// ValidateContent trims content and checks its length in runes, so non-Latin
// scripts get the same budget as ASCII.
// Returns the trimmed content, or ErrEmptyContent / ErrContentTooLong.
func ValidateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	runes := utf8.RuneCountInString(trimmed)
	if runes < config.MinMessageLength {
		return "", ErrEmptyContent
	}
	if runes > config.MaxMessageLength {
		return "", ErrContentTooLong
	}
	return trimmed, nil
}

// checkWindow enforces the appointment gate for a chat at the given instant.
// General chats (no bound appointment) are never gated. For appointment-bound
// chats messaging is permitted only within
// [start − config.WindowBefore, start + config.WindowAfter], both bounds inclusive.
func (s *Service) checkWindow(chat *models.Chat, now time.Time) error {
	if chat.AppointmentID == nil {
		return nil
	}

	appt, err := s.Storage.GetAppointmentByID(*chat.AppointmentID)
	if err != nil {
		return err
	}
	if appt == nil {
		// Зустріч видалена підсистемою розкладу — чат поводиться як загальний.
		return nil
	}

	startsAt, err := appt.StartsAt(s.Loc)
	if err != nil {
		return err
	}

	opensAt := startsAt.Add(-config.WindowBefore)
	closesAt := startsAt.Add(config.WindowAfter)
	if now.Before(opensAt) || now.After(closesAt) {
		return &WindowError{OpensAt: opensAt, ClosesAt: closesAt}
	}
	return nil
}
