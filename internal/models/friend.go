package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Friend is an unordered friendship edge. (A,B) and (B,A) are the same edge;
// handlers check both orientations before inserting or deleting.
type Friend struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PersonOneID string `gorm:"index;type:text;not null" json:"personOneId"`
	PersonOne   User   `gorm:"foreignKey:PersonOneID" json:"personOne,omitempty"`

	PersonTwoID string `gorm:"index;type:text;not null" json:"personTwoId"`
	PersonTwo   User   `gorm:"foreignKey:PersonTwoID" json:"personTwo,omitempty"`
}

func (f *Friend) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
