package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is immutable once created except for deletion, which only its
// sender may perform.
type Message struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	SenderID string `gorm:"index;type:text;not null" json:"senderId"`
	Sender   User   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	// Optional direct recipient, kept alongside the conversation reference.
	RecipientID *string `gorm:"type:text" json:"recipientId"`

	ConversationID string `gorm:"index;type:text;not null" json:"conversationId"`

	Content string `gorm:"type:text" json:"content"`

	// Optional media attachment.
	MediaID *string `gorm:"type:text" json:"mediaId"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
