package model

import "time"

// Message is one direct message between two users, optionally tied to a
// session request. Rows are immutable once created.
type Message struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	SenderID         uint      `json:"sender_id" gorm:"not null;index:idx_message_conversation,priority:1"`
	ReceiverID       uint      `json:"receiver_id" gorm:"not null;index:idx_message_conversation,priority:2"`
	SessionRequestID *uint     `json:"session_request_id,omitempty" gorm:"index"`
	Content          string    `json:"content" gorm:"type:text;not null"`
	CreatedAt        time.Time `json:"created_at" gorm:"index:idx_message_conversation,priority:3"`

	// Relations
	Sender   User `json:"-" gorm:"foreignKey:SenderID"`
	Receiver User `json:"-" gorm:"foreignKey:ReceiverID"`
}
