package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a direct or group messaging context. Direct conversations
// carry no name and are never public; groups require a name and may be
// flagged public so other users can join.
//
// The creator is implicitly authorized for every participant-gated read even
// when absent from the member list.
type Conversation struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Name    string `json:"name"`
	IsGroup bool   `gorm:"default:false" json:"isGroup"`
	Public  bool   `gorm:"default:false" json:"public"`

	CreatorID string `gorm:"index;type:text;not null" json:"creatorId"`
	Creator   User   `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`

	Members []User `gorm:"many2many:conversation_members;" json:"members,omitempty"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// IsParticipant reports whether the given user may read this conversation:
// either the creator or present in the member list.
func (c *Conversation) IsParticipant(userID string) bool {
	if c.CreatorID == userID {
		return true
	}
	for _, m := range c.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
