package repository

import (
	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type MessageRepository interface {
	SaveMessage(msg *models.Message) error
	GetInbox(receiverID int64) ([]models.InboxMessage, error)
	ClaimUnseen(receiverID int64) ([]models.InboxMessage, error)
}

type messageRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMessageRepository(db *sqlx.DB, logger *zap.Logger) MessageRepository {
	return &messageRepository{db: db, logger: logger}
}

func (r *messageRepository) SaveMessage(msg *models.Message) error {
	query := `INSERT INTO messages (content, sender_id, receiver_id, seen)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRowx(query, msg.Content, msg.SenderID, msg.ReceiverID, msg.Seen).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert message", zap.Error(err))
		return err
	}
	return nil
}

// GetInbox returns every message delivered to the receiver, oldest
// first, with the sender resolved to their email.
func (r *messageRepository) GetInbox(receiverID int64) ([]models.InboxMessage, error) {
	inbox := []models.InboxMessage{}
	query := `
		SELECT u.email AS sender_email, m.content
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.receiver_id = $1
		ORDER BY m.id`
	err := r.db.Select(&inbox, query, receiverID)
	if err != nil {
		r.logger.Error("Failed to query inbox", zap.Error(err))
		return nil, err
	}
	return inbox, nil
}

// ClaimUnseen flips seen to true for every unseen message of the
// receiver and returns the flipped set, oldest first. The read and the
// flip happen in one statement: concurrent callers for the same
// receiver block on the row locks and re-check seen = FALSE, so each
// previously-unseen message is claimed by exactly one caller.
func (r *messageRepository) ClaimUnseen(receiverID int64) ([]models.InboxMessage, error) {
	inbox := []models.InboxMessage{}
	query := `
		WITH claimed AS (
			UPDATE messages
			SET seen = TRUE
			WHERE receiver_id = $1 AND seen = FALSE
			RETURNING id, sender_id, content
		)
		SELECT u.email AS sender_email, c.content
		FROM claimed c
		JOIN users u ON u.id = c.sender_id
		ORDER BY c.id`
	err := r.db.Select(&inbox, query, receiverID)
	if err != nil {
		r.logger.Error("Failed to claim unseen messages", zap.Error(err))
		return nil, err
	}
	return inbox, nil
}
