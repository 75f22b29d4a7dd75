package service

import (
	"errors"
	"fmt"

	"backend/internal/models"
	"backend/internal/repository"

	"go.uber.org/zap"
)

var ErrUnknownReceiver = errors.New("no such email registered")

type MessageService interface {
	Send(sender *models.User, receiverEmail, content string) error
	ListAll(user *models.User) ([]models.InboxMessage, error)
	ListUnseenAndMarkSeen(user *models.User) ([]models.InboxMessage, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	logger   *zap.Logger
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, logger *zap.Logger) MessageService {
	return &messageService{
		messages: messages,
		users:    users,
		logger:   logger,
	}
}

// Send persists a message from sender to the user registered under
// receiverEmail. Nothing is written when the receiver doesn't exist.
func (s *messageService) Send(sender *models.User, receiverEmail, content string) error {
	receiver, err := s.users.GetUserByEmail(receiverEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUnknownReceiver
		}
		s.logger.Error("Failed to resolve receiver", zap.Error(err))
		return fmt.Errorf("failed to resolve receiver: %w", err)
	}

	msg := &models.Message{
		Content:    content,
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Seen:       false,
	}
	if err := s.messages.SaveMessage(msg); err != nil {
		s.logger.Error("Failed to save message", zap.Error(err))
		return fmt.Errorf("failed to save message: %w", err)
	}

	s.logger.Info("Message sent",
		zap.Int64("sender_id", sender.ID),
		zap.Int64("receiver_id", receiver.ID))
	return nil
}

// ListAll returns every message delivered to the user, oldest first.
func (s *messageService) ListAll(user *models.User) ([]models.InboxMessage, error) {
	inbox, err := s.messages.GetInbox(user.ID)
	if err != nil {
		s.logger.Error("Failed to load inbox", zap.Error(err))
		return nil, fmt.Errorf("failed to load inbox: %w", err)
	}
	return inbox, nil
}

// ListUnseenAndMarkSeen claims the user's unseen messages, flipping
// seen in the same statement that reads them, and returns the claimed
// set. Concurrent calls for the same user partition the unseen set.
func (s *messageService) ListUnseenAndMarkSeen(user *models.User) ([]models.InboxMessage, error) {
	inbox, err := s.messages.ClaimUnseen(user.ID)
	if err != nil {
		s.logger.Error("Failed to claim unseen messages", zap.Error(err))
		return nil, fmt.Errorf("failed to claim unseen messages: %w", err)
	}
	return inbox, nil
}
