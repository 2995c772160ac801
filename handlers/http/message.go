package httpHandler

import (
	"net/http"

	"sage-portal/auth"
	"sage-portal/usecases"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	useCase *usecases.MessageUseCase
}

func NewMessageHandler(useCase *usecases.MessageUseCase) *MessageHandler {
	return &MessageHandler{useCase: useCase}
}

// GetMine handles GET /api/v1/me/messages
func (h *MessageHandler) GetMine(c *gin.Context) {
	messages, err := h.useCase.UserMessages(auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, messages)
}

// GetConversation handles GET /api/v1/messages/conversation/:user_id
func (h *MessageHandler) GetConversation(c *gin.Context) {
	messages, err := h.useCase.Conversation(auth.UserID(c), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, messages)
}

// Send handles POST /api/v1/messages
func (h *MessageHandler) Send(c *gin.Context) {
	var req usecases.MessageRequest
	if !bindJSON(c, &req) {
		return
	}
	message, err := h.useCase.SendMessage(auth.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    message,
	})
}

// MarkAsRead handles PUT /api/v1/messages/:id/read
func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	if err := h.useCase.MarkAsRead(c.Param("id"), auth.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}
