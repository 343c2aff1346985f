package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Media is the metadata row for an uploaded file. The bytes themselves live
// on disk: the original under the upload root and a width-bounded derivative
// under rescaled/ (or profilepics/ for profile pictures). Deletion moves the
// files to the retention area before removing this row.
type Media struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	FileName string `gorm:"not null" json:"fileName"`

	OwnerID string `gorm:"index;type:text;not null" json:"ownerId"`
}

func (m *Media) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
