// Package chat provides the core logic of the student–advisor chat subsystem:
// chat lifecycle (find-or-create, close), the appointment messaging gate, and
// ordered message append/read.
package chat

import (
	"log"
	"time"

	"advisorlink/backend/internal/models"
	"advisorlink/backend/internal/storage"
)

// lockRetryDelay — пауза перед повторною вибіркою, коли блокування пари зайняте.
const lockRetryDelay = 100 * time.Millisecond

// Service handles the business logic for advising chats.
type Service struct {
	Storage storage.Storage
	// Loc is the timezone in which appointment wall-clock schedules are interpreted.
	Loc *time.Location
	// Now is the clock used for gating and timestamps. Injectable for tests.
	Now func() time.Time
}

// NewService creates a new chat service.
func NewService(s storage.Storage, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		Storage: s,
		Loc:     loc,
		Now:     time.Now,
	}
}

// StartChat finds or creates the active chat for a (student, advisor) pair.
// Repeated calls for the same pair return the existing active chat unchanged.
// A newly created chat is bound to the pair's earliest upcoming confirmed
// appointment, if one exists.
func (s *Service) StartChat(studentID, advisorID string) (*models.Chat, error) {
	advisor, err := s.Storage.GetUserByID(advisorID)
	if err != nil {
		return nil, err
	}
	if advisor == nil || !advisor.IsAdvisor() {
		return nil, ErrInvalidParticipant
	}

	if existing, err := s.Storage.GetActiveChatForPair(studentID, advisorID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	// Серіалізуємо create для пари через Redis-блокування. Якщо блокування
	// зайняте, чекаємо та перевіряємо, чи інший запит вже створив чат.
	locked, err := s.Storage.AcquirePairLock(studentID, advisorID)
	if err != nil {
		return nil, err
	}
	if !locked {
		time.Sleep(lockRetryDelay)
		if existing, err := s.Storage.GetActiveChatForPair(studentID, advisorID); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
		// Продовжуємо без блокування: частковий унікальний індекс
		// (student_id, advisor_id) WHERE is_active лишається запобіжником.
	} else {
		defer func() {
			if err := s.Storage.ReleasePairLock(studentID, advisorID); err != nil {
				log.Printf("WARNING: Failed to release pair lock (%s, %s): %v", studentID, advisorID, err)
			}
		}()

		// Повторна перевірка вже під блокуванням.
		if existing, err := s.Storage.GetActiveChatForPair(studentID, advisorID); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	}

	now := s.Now()
	chat := &models.Chat{
		StudentID: studentID,
		AdvisorID: advisorID,
		IsActive:  true,
		StartedAt: now,
		UpdatedAt: now,
	}

	// Зріз "майбутніх" зустрічей порівнюється зі wall-clock розкладом кампусу,
	// тому момент часу переводиться в кампусний пояс перед пошуком.
	appt, err := s.Storage.FindUpcomingConfirmedAppointment(studentID, advisorID, now.In(s.Loc))
	if err != nil {
		return nil, err
	}
	if appt != nil {
		apptID := appt.ID
		chat.AppointmentID = &apptID
	}

	if err := s.Storage.SaveChat(chat); err != nil {
		// Програш гонки на унікальному індексі: повертаємо чат переможця.
		if existing, ferr := s.Storage.GetActiveChatForPair(studentID, advisorID); ferr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}

	log.Printf("INFO: Chat %s started between student %s and advisor %s", chat.ChatID, studentID, advisorID)
	return chat, nil
}

// CloseChat deactivates a chat. Only a participant may close it, and closing an
// already-inactive chat fails with ErrChatAlreadyClosed. Messages are retained
// and remain readable.
func (s *Service) CloseChat(chatID, requesterID string) (*models.Chat, error) {
	chat, err := s.Storage.GetChatByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil || !chat.HasParticipant(requesterID) {
		return nil, ErrChatNotFound
	}
	if !chat.IsActive {
		return nil, ErrChatAlreadyClosed
	}

	endedAt := s.Now()
	if err := s.Storage.CloseChat(chat.ChatID, endedAt); err != nil {
		return nil, err
	}

	chat.IsActive = false
	chat.EndedAt = &endedAt
	return chat, nil
}

// ListChats returns every chat (active or closed) the user participates in,
// most recently active first.
func (s *Service) ListChats(userID string) ([]models.Chat, error) {
	return s.Storage.GetChatsForUser(userID)
}

// GetChat returns a chat and its messages in chronological order.
// Non-participants receive the same ErrChatNotFound as a nonexistent chat ID.
func (s *Service) GetChat(chatID, requesterID string) (*models.Chat, []models.Message, error) {
	chat, err := s.Storage.GetChatByID(chatID)
	if err != nil {
		return nil, nil, err
	}
	if chat == nil || !chat.HasParticipant(requesterID) {
		return nil, nil, ErrChatNotFound
	}

	messages, err := s.Storage.GetChatMessages(chat.ChatID)
	if err != nil {
		return nil, nil, err
	}
	return chat, messages, nil
}

// SendMessage validates and appends a message to a chat. Checks run in a fixed
// order and the first failure wins: content, participant, active state,
// appointment window. The persisted message with its server-assigned ID and
// timestamp is returned.
func (s *Service) SendMessage(chatID, senderID, content string) (*models.Message, error) {
	trimmed, err := ValidateContent(content)
	if err != nil {
		return nil, err
	}

	chat, err := s.Storage.GetChatByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil || !chat.HasParticipant(senderID) {
		return nil, ErrChatNotFound
	}
	if !chat.IsActive {
		return nil, ErrChatClosed
	}
	if err := s.checkWindow(chat, s.Now()); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ChatID:   chat.ChatID,
		SenderID: senderID,
		Content:  trimmed,
	}
	if err := s.Storage.AppendMessage(msg); err != nil {
		return nil, err
	}

	// Подія для downstream-споживачів; невдача не скасовує вже збережене повідомлення.
	event := models.MessageEvent{
		MessageID: msg.ID,
		ChatID:    msg.ChatID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		SentAt:    msg.CreatedAt,
	}
	if err := s.Storage.PublishMessageEvent(msg.ChatID, event); err != nil {
		log.Printf("WARNING: Failed to publish message event for chat %s: %v", msg.ChatID, err)
	}

	return msg, nil
}
