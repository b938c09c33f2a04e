package chat

import (
	"errors"
	"fmt"
	"time"
)

// Domain error kinds surfaced to the API layer. Storage failures are returned
// as-is and are the only class a caller may retry.
var (
	// ErrInvalidParticipant means the target advisor ID does not resolve to an advisor.
	ErrInvalidParticipant = errors.New("advisor not found")
	// ErrChatNotFound covers both a missing chat and a requester who is not a
	// participant. The two cases are deliberately indistinguishable so that chat
	// IDs cannot be probed for existence.
	ErrChatNotFound = errors.New("chat not found")
	// ErrChatClosed means a send was attempted on an inactive chat.
	ErrChatClosed = errors.New("chat is closed")
	// ErrChatAlreadyClosed means a close was attempted on an already-inactive chat.
	ErrChatAlreadyClosed = errors.New("chat is already closed")
	// ErrEmptyContent means the message content was empty after trimming.
	ErrEmptyContent = errors.New("message content is empty")
	// ErrContentTooLong means the trimmed content exceeds the configured maximum.
	ErrContentTooLong = errors.New("message content is too long")
)

// WindowError is returned when a send falls outside the messaging window of an
// appointment-bound chat. It carries the window bounds for client display.
type WindowError struct {
	OpensAt  time.Time
	ClosesAt time.Time
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("messaging is open from %s until %s",
		e.OpensAt.Format(time.RFC3339), e.ClosesAt.Format(time.RFC3339))
}
