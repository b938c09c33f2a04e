package chat_test

import (
	"advisorlink/backend/internal/models"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) SaveChat(chat *models.Chat) error {
	args := m.Called(chat)
	return args.Error(0)
}

func (m *MockStorage) CloseChat(chatID string, endedAt time.Time) error {
	args := m.Called(chatID, endedAt)
	return args.Error(0)
}

func (m *MockStorage) GetChatByID(chatID string) (*models.Chat, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockStorage) GetActiveChatForPair(studentID, advisorID string) (*models.Chat, error) {
	args := m.Called(studentID, advisorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockStorage) GetChatsForUser(userID string) ([]models.Chat, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chat), args.Error(1)
}

func (m *MockStorage) AppendMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetChatMessages(chatID string) ([]models.Message, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) SaveAppointment(appt *models.Appointment) error {
	args := m.Called(appt)
	return args.Error(0)
}

func (m *MockStorage) UpdateAppointmentStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockStorage) FindUpcomingConfirmedAppointment(studentID, advisorID string, after time.Time) (*models.Appointment, error) {
	args := m.Called(studentID, advisorID, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockStorage) GetAppointmentByID(id uint) (*models.Appointment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockStorage) AcquirePairLock(studentID, advisorID string) (bool, error) {
	args := m.Called(studentID, advisorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) ReleasePairLock(studentID, advisorID string) error {
	args := m.Called(studentID, advisorID)
	return args.Error(0)
}

func (m *MockStorage) PublishMessageEvent(chatID string, event models.MessageEvent) error {
	args := m.Called(chatID, event)
	return args.Error(0)
}
