package storage

import (
	"advisorlink/backend/internal/models"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// pairLockTTL обмежує час життя блокування пари, якщо власник аварійно завершився.
const pairLockTTL = 5 * time.Second

type Storage interface {
	SaveUser(user *models.User) error
	GetUserByID(userID string) (*models.User, error)

	SaveChat(chat *models.Chat) error
	CloseChat(chatID string, endedAt time.Time) error
	GetChatByID(chatID string) (*models.Chat, error)
	GetActiveChatForPair(studentID, advisorID string) (*models.Chat, error)
	GetChatsForUser(userID string) ([]models.Chat, error)

	AppendMessage(msg *models.Message) error
	GetChatMessages(chatID string) ([]models.Message, error)

	SaveAppointment(appt *models.Appointment) error
	UpdateAppointmentStatus(id uint, status string) error
	FindUpcomingConfirmedAppointment(studentID, advisorID string, after time.Time) (*models.Appointment, error)
	GetAppointmentByID(id uint) (*models.Appointment, error)

	AcquirePairLock(studentID, advisorID string) (bool, error)
	ReleasePairLock(studentID, advisorID string) error
	PublishMessageEvent(chatID string, event models.MessageEvent) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser зберігає користувача в PostgreSQL
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetUserByID повертає користувача за його ID, або nil без помилки, якщо не знайдено.
func (s *Service) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveChat зберігає чат у PostgreSQL
func (s *Service) SaveChat(chat *models.Chat) error {
	return s.DB.Save(chat).Error
}

// CloseChat закриває чат, встановлюючи IsActive = false та EndedAt
func (s *Service) CloseChat(chatID string, endedAt time.Time) error {
	return s.DB.Model(&models.Chat{}).
		Where("chat_id = ?", chatID).
		Updates(map[string]interface{}{
			"is_active": false,
			"ended_at":  endedAt,
		}).Error
}

// GetChatByID повертає чат за його ID, або nil без помилки, якщо не знайдено.
// Перевірка, чи є запитувач учасником, виконується на рівні сервісу.
func (s *Service) GetChatByID(chatID string) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.Where("chat_id = ?", chatID).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get chat %s: %v", chatID, err)
		return nil, err
	}
	return &chat, nil
}

// GetActiveChatForPair знаходить активний чат для пари (студент, радник), якщо він існує.
func (s *Service) GetActiveChatForPair(studentID, advisorID string) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.Where("is_active = ?", true).
		Where("student_id = ? AND advisor_id = ?", studentID, advisorID).
		First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to find active chat for pair (%s, %s): %v", studentID, advisorID, err)
		return nil, err
	}
	return &chat, nil
}

// GetChatsForUser повертає всі чати користувача (активні та закриті),
// відсортовані за останньою активністю.
func (s *Service) GetChatsForUser(userID string) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.DB.Where("student_id = ? OR advisor_id = ?", userID, userID).
		Order("updated_at desc").
		Find(&chats).Error
	if err != nil {
		log.Printf("ERROR: Failed to list chats for user %s: %v", userID, err)
		return nil, err
	}
	return chats, nil
}

// AppendMessage зберігає повідомлення та оновлює updated_at чату в одній транзакції.
// Після успіху msg.ID та msg.CreatedAt заповнені GORM.
func (s *Service) AppendMessage(msg *models.Message) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Chat{}).
			Where("chat_id = ?", msg.ChatID).
			Update("updated_at", msg.CreatedAt).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to append message to chat %s: %v", msg.ChatID, err)
	}
	return err
}

// GetChatMessages отримує повідомлення чату в хронологічному порядку.
// ID вторинним ключем сортування розв'язує збіги часових міток.
func (s *Service) GetChatMessages(chatID string) ([]models.Message, error) {
	var messages []models.Message
	if err := s.DB.Where("chat_id = ?", chatID).
		Order("created_at asc, id asc").
		Find(&messages).Error; err != nil {
		log.Printf("ERROR: Failed to get messages for chat %s: %v", chatID, err)
		return nil, err
	}
	return messages, nil
}

// SaveAppointment зберігає зустріч у PostgreSQL
func (s *Service) SaveAppointment(appt *models.Appointment) error {
	return s.DB.Save(appt).Error
}

// UpdateAppointmentStatus змінює статус зустрічі (pending/confirmed/cancelled).
func (s *Service) UpdateAppointmentStatus(id uint, status string) error {
	return s.DB.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// FindUpcomingConfirmedAppointment знаходить найближчу майбутню підтверджену
// зустріч для пари (студент, радник). Повертає nil без помилки, якщо такої немає.
// Формати Date ("2006-01-02") та Time ("15:04") сортуються лексикографічно,
// тому конкатенація порівнюється як момент часу. after має бути вже переведений
// у часовий пояс кампусу: Format рендерить wall-clock саме в поясі значення.
func (s *Service) FindUpcomingConfirmedAppointment(studentID, advisorID string, after time.Time) (*models.Appointment, error) {
	cutoff := after.Format(models.AppointmentDateLayout + " " + models.AppointmentTimeLayout)

	var appt models.Appointment
	err := s.DB.Where("student_id = ? AND advisor_id = ?", studentID, advisorID).
		Where("status = ?", models.AppointmentConfirmed).
		Where("date || ' ' || time >= ?", cutoff).
		Order("date asc, time asc").
		First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to find upcoming appointment for pair (%s, %s): %v", studentID, advisorID, err)
		return nil, err
	}
	return &appt, nil
}

// GetAppointmentByID повертає зустріч за її внутрішнім ID (gorm.Model.ID).
func (s *Service) GetAppointmentByID(id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.DB.First(&appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func pairLockKey(studentID, advisorID string) string {
	return "chatlock:" + studentID + ":" + advisorID
}

// AcquirePairLock бере короткочасне блокування в Redis для пари (студент, радник),
// щоб серіалізувати find-or-create та не створити два активні чати.
func (s *Service) AcquirePairLock(studentID, advisorID string) (bool, error) {
	return s.Redis.SetNX(s.Ctx, pairLockKey(studentID, advisorID), "1", pairLockTTL).Result()
}

// ReleasePairLock звільняє блокування пари.
func (s *Service) ReleasePairLock(studentID, advisorID string) error {
	return s.Redis.Del(s.Ctx, pairLockKey(studentID, advisorID)).Err()
}

// PublishMessageEvent публікує подію про нове повідомлення в Redis Pub/Sub
func (s *Service) PublishMessageEvent(chatID string, event models.MessageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, "chat:"+chatID, string(payload)).Err(); err != nil {
		return err
	}

	return nil
}
