package chat_test

import (
	"advisorlink/backend/internal/chat"
	"advisorlink/backend/internal/models"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// newTestService creates a chat service over the mock storage with a fixed
// clock in UTC.
func newTestService(storage *MockStorage, now time.Time) *chat.Service {
	svc := chat.NewService(storage, time.UTC)
	svc.Now = func() time.Time { return now }
	return svc
}

// expectAppend sets up the storage mock to accept one message append, filling
// the server-assigned fields the way GORM would.
func expectAppend(storageMock *MockStorage, id uint, at time.Time) {
	storageMock.On("AppendMessage", mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			msg := args.Get(0).(*models.Message)
			msg.ID = id
			msg.CreatedAt = at
		}).
		Return(nil).Once()
	storageMock.On("PublishMessageEvent", mock.AnythingOfType("string"), mock.AnythingOfType("models.MessageEvent")).
		Return(nil).Once()
}

func activeChat() *models.Chat {
	return &models.Chat{
		ChatID:    "chat-1",
		StudentID: "student-1",
		AdvisorID: "advisor-1",
		IsActive:  true,
	}
}

// TestValidateContent covers trimming and the empty/too-long rejections.
func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{name: "plain text", content: "Hello", want: "Hello"},
		{name: "surrounding whitespace trimmed", content: "  Hello there \n", want: "Hello there"},
		{name: "empty string", content: "", wantErr: chat.ErrEmptyContent},
		{name: "whitespace only", content: "   \t\n  ", wantErr: chat.ErrEmptyContent},
		{name: "too long", content: strings.Repeat("a", 4001), wantErr: chat.ErrContentTooLong},
		{name: "exactly max length", content: strings.Repeat("a", 4000), want: strings.Repeat("a", 4000)},
		{name: "max length in cyrillic runes", content: strings.Repeat("й", 4000), want: strings.Repeat("й", 4000)},
		{name: "too many cyrillic runes", content: strings.Repeat("й", 4001), wantErr: chat.ErrContentTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chat.ValidateContent(tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestSendMessage_NoAppointment verifies that a chat with no bound appointment
// accepts messages regardless of the current time.
func TestSendMessage_NoAppointment(t *testing.T) {
	// Arrange
	now := time.Date(2025, 1, 10, 3, 0, 0, 0, time.UTC) // 3 AM, far from any window
	storageMock := new(MockStorage)
	svc := newTestService(storageMock, now)

	storageMock.On("GetChatByID", "chat-1").Return(activeChat(), nil).Once()
	expectAppend(storageMock, 1, now)

	// Act
	msg, err := svc.SendMessage("chat-1", "student-1", "Hello")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Hello", msg.Content)
	assert.Equal(t, "student-1", msg.SenderID)
	storageMock.AssertExpectations(t)
	storageMock.AssertNotCalled(t, "GetAppointmentByID", mock.Anything)
}

// TestSendMessage_AppointmentWindow exercises the gate at the exact window
// boundaries and one minute outside each. The window around a 14:00 appointment
// is [13:45, 15:00], both ends inclusive.
func TestSendMessage_AppointmentWindow(t *testing.T) {
	apptID := uint(7)
	appt := &models.Appointment{
		StudentID: "student-1",
		AdvisorID: "advisor-1",
		Date:      "2025-01-10",
		Time:      "14:00",
		Status:    models.AppointmentConfirmed,
	}
	appt.ID = apptID

	tests := []struct {
		name    string
		now     time.Time
		allowed bool
	}{
		{name: "one minute before window opens", now: time.Date(2025, 1, 10, 13, 44, 0, 0, time.UTC), allowed: false},
		{name: "exactly at window open", now: time.Date(2025, 1, 10, 13, 45, 0, 0, time.UTC), allowed: true},
		{name: "at appointment start", now: time.Date(2025, 1, 10, 14, 0, 0, 0, time.UTC), allowed: true},
		{name: "exactly at window close", now: time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC), allowed: true},
		{name: "one minute after window closes", now: time.Date(2025, 1, 10, 15, 1, 0, 0, time.UTC), allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			storageMock := new(MockStorage)
			svc := newTestService(storageMock, tt.now)

			bound := activeChat()
			bound.AppointmentID = &apptID

			storageMock.On("GetChatByID", "chat-1").Return(bound, nil).Once()
			storageMock.On("GetAppointmentByID", apptID).Return(appt, nil).Once()
			if tt.allowed {
				expectAppend(storageMock, 1, tt.now)
			}

			// Act
			msg, err := svc.SendMessage("chat-1", "student-1", "are you there?")

			// Assert
			if tt.allowed {
				assert.NoError(t, err)
				assert.NotNil(t, msg)
			} else {
				var windowErr *chat.WindowError
				assert.ErrorAs(t, err, &windowErr)
				assert.Equal(t, time.Date(2025, 1, 10, 13, 45, 0, 0, time.UTC), windowErr.OpensAt)
				assert.Equal(t, time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC), windowErr.ClosesAt)
				storageMock.AssertNotCalled(t, "AppendMessage", mock.Anything)
			}
			storageMock.AssertExpectations(t)
		})
	}
}

// TestSendMessage_ClosedChat verifies that a closed chat rejects sends before
// any appointment lookup happens.
func TestSendMessage_ClosedChat(t *testing.T) {
	// Arrange
	now := time.Date(2025, 1, 10, 14, 0, 0, 0, time.UTC)
	storageMock := new(MockStorage)
	svc := newTestService(storageMock, now)

	apptID := uint(7)
	closed := activeChat()
	closed.IsActive = false
	closed.AppointmentID = &apptID // inside the window, yet still rejected

	storageMock.On("GetChatByID", "chat-1").Return(closed, nil).Once()

	// Act
	msg, err := svc.SendMessage("chat-1", "student-1", "Hello?")

	// Assert
	assert.ErrorIs(t, err, chat.ErrChatClosed)
	assert.Nil(t, msg)
	storageMock.AssertNotCalled(t, "GetAppointmentByID", mock.Anything)
	storageMock.AssertNotCalled(t, "AppendMessage", mock.Anything)
}

// TestSendMessage_AppointmentGoneBehavesAsGeneral covers the schedule subsystem
// deleting a bound appointment: the chat falls back to ungated messaging.
func TestSendMessage_AppointmentGoneBehavesAsGeneral(t *testing.T) {
	// Arrange
	now := time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC)
	storageMock := new(MockStorage)
	svc := newTestService(storageMock, now)

	apptID := uint(42)
	bound := activeChat()
	bound.AppointmentID = &apptID

	storageMock.On("GetChatByID", "chat-1").Return(bound, nil).Once()
	storageMock.On("GetAppointmentByID", apptID).Return(nil, nil).Once()
	expectAppend(storageMock, 1, now)

	// Act
	msg, err := svc.SendMessage("chat-1", "advisor-1", "rescheduling soon")

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, msg)
	storageMock.AssertExpectations(t)
}

// TestSendMessage_ContentTrimmedBeforePersist verifies that surrounding
// whitespace never reaches storage.
func TestSendMessage_ContentTrimmedBeforePersist(t *testing.T) {
	// Arrange
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	storageMock := new(MockStorage)
	svc := newTestService(storageMock, now)

	storageMock.On("GetChatByID", "chat-1").Return(activeChat(), nil).Once()

	var persisted string
	storageMock.On("AppendMessage", mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			m := args.Get(0).(*models.Message)
			persisted = m.Content
			m.ID = 1
			m.CreatedAt = now
		}).
		Return(nil).Once()
	storageMock.On("PublishMessageEvent", mock.AnythingOfType("string"), mock.AnythingOfType("models.MessageEvent")).
		Return(nil).Once()

	// Act
	msg, err := svc.SendMessage("chat-1", "student-1", "   Hello, advisor!  \n")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Hello, advisor!", persisted)
	assert.Equal(t, "Hello, advisor!", msg.Content)
}

// TestSendMessage_EmptyContentFailsFirst verifies validation order: empty
// content wins even when the chat does not exist.
func TestSendMessage_EmptyContentFailsFirst(t *testing.T) {
	// Arrange
	storageMock := new(MockStorage)
	svc := newTestService(storageMock, time.Now())

	// Act
	msg, err := svc.SendMessage("no-such-chat", "student-1", "   ")

	// Assert
	assert.ErrorIs(t, err, chat.ErrEmptyContent)
	assert.Nil(t, msg)
	storageMock.AssertNotCalled(t, "GetChatByID", mock.Anything)
}
