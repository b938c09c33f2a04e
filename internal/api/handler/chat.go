package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"advisorlink/backend/internal/chat"

	"github.com/gin-gonic/gin"
)

// ListChats повертає всі чати поточного користувача, найсвіжіші першими.
func (h *Handler) ListChats(c *gin.Context) {
	userID := c.GetString("userID")

	chats, err := h.Chat.ListChats(userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats, "count": len(chats)})
}

// StartChat знаходить або створює активний чат студента з радником.
func (h *Handler) StartChat(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		AdvisorID string `json:"advisor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "advisor_id is required"})
		return
	}

	started, err := h.Chat.StartChat(userID, req.AdvisorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat": started})
}

// GetChat повертає чат разом з усіма повідомленнями в хронологічному порядку.
func (h *Handler) GetChat(c *gin.Context) {
	userID := c.GetString("userID")
	chatID := c.Param("id")

	found, messages, err := h.Chat.GetChat(chatID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat": found, "messages": messages})
}

// SendMessage надсилає повідомлення в чат з урахуванням вікна зустрічі.
func (h *Handler) SendMessage(c *gin.Context) {
	userID := c.GetString("userID")
	chatID := c.Param("id")

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	msg, err := h.Chat.SendMessage(chatID, userID, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// CloseChat закриває активний чат. Повідомлення залишаються доступними для читання.
func (h *Handler) CloseChat(c *gin.Context) {
	userID := c.GetString("userID")
	chatID := c.Param("id")

	closed, err := h.Chat.CloseChat(chatID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat": closed})
}

// requestLang бере первинний тег з Accept-Language ("uk-UA,uk;q=0.9" -> "uk").
func requestLang(c *gin.Context) string {
	lang := c.GetHeader("Accept-Language")
	if i := strings.IndexAny(lang, ",;-"); i > 0 {
		lang = lang[:i]
	}
	return strings.ToLower(strings.TrimSpace(lang))
}

// respondError відображає доменні помилки chat-пакета на HTTP-статуси.
// Кожен різновид має власний код і локалізоване повідомлення, щоб клієнт
// міг показати відповідний текст.
func (h *Handler) respondError(c *gin.Context, err error) {
	lang := requestLang(c)

	var windowErr *chat.WindowError
	if errors.As(err, &windowErr) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":            h.Localizer.Message(lang, "error.outside_window"),
			"kind":             "outside_appointment_window",
			"window_opens_at":  windowErr.OpensAt.Format(time.RFC3339),
			"window_closes_at": windowErr.ClosesAt.Format(time.RFC3339),
		})
		return
	}

	switch {
	case errors.Is(err, chat.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": h.Localizer.Message(lang, "error.empty_content"), "kind": "empty_content"})
	case errors.Is(err, chat.ErrContentTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": h.Localizer.Message(lang, "error.content_too_long"), "kind": "content_too_long"})
	case errors.Is(err, chat.ErrInvalidParticipant):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": h.Localizer.Message(lang, "error.invalid_participant"), "kind": "invalid_participant"})
	case errors.Is(err, chat.ErrChatNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": h.Localizer.Message(lang, "error.chat_not_found"), "kind": "chat_not_found"})
	case errors.Is(err, chat.ErrChatClosed):
		c.JSON(http.StatusForbidden, gin.H{"error": h.Localizer.Message(lang, "error.chat_closed"), "kind": "chat_closed"})
	case errors.Is(err, chat.ErrChatAlreadyClosed):
		c.JSON(http.StatusConflict, gin.H{"error": h.Localizer.Message(lang, "error.chat_already_closed"), "kind": "chat_already_closed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.Localizer.Message(lang, "error.internal"), "kind": "internal"})
	}
}
