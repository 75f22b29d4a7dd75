package models

import "time"

// Message represents a message stored in the 'messages' table. Seen
// flips from false to true exactly once, when the receiver claims the
// message through the unseen endpoint.
type Message struct {
	ID         int64     `db:"id"`
	Content    string    `db:"content"`
	SenderID   int64     `db:"sender_id"`
	ReceiverID int64     `db:"receiver_id"`
	Seen       bool      `db:"seen"`
	CreatedAt  time.Time `db:"created_at"`
}

// InboxMessage is the projection returned to receivers: the sender's
// email and the content, nothing else.
type InboxMessage struct {
	SenderEmail string `db:"sender_email" json:"sender"`
	Content     string `db:"content" json:"content"`
}
