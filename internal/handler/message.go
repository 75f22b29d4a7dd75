package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/models"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MessageHandler interface {
	Send(c *gin.Context)
	GetAll(c *gin.Context)
	GetUnseen(c *gin.Context)
}

type messageHandler struct {
	messageService service.MessageService
	logger         *zap.Logger
}

func NewMessageHandler(messageService service.MessageService, logger *zap.Logger) MessageHandler {
	return &messageHandler{messageService: messageService, logger: logger}
}

// Content is a pointer: the field must be present, but empty content is
// legal (content is opaque text with no size constraint).
type SendMessageRequest struct {
	Receiver string  `json:"receiver" binding:"required,email"`
	Content  *string `json:"content" binding:"required"`
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CurrentUserKey).(*models.User)
}

// Send handles POST /messages/send.
func (h *messageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for send", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sender := currentUser(c)
	if err := h.messageService.Send(sender, req.Receiver, *req.Content); err != nil {
		if errors.Is(err, service.ErrUnknownReceiver) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No such email registered"})
			return
		}
		h.logger.Error("Failed to send message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"receiver": req.Receiver,
		"content":  *req.Content,
	})
}

// GetAll handles GET /messages/all.
func (h *messageHandler) GetAll(c *gin.Context) {
	user := currentUser(c)
	inbox, err := h.messageService.ListAll(user)
	if err != nil {
		h.logger.Error("Failed to list messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, inbox)
}

// GetUnseen handles GET /messages/unseen. The returned messages are
// marked seen as part of the same call.
func (h *messageHandler) GetUnseen(c *gin.Context) {
	user := currentUser(c)
	inbox, err := h.messageService.ListUnseenAndMarkSeen(user)
	if err != nil {
		h.logger.Error("Failed to claim unseen messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, inbox)
}
