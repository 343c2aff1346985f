package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. An account starts unconfirmed and becomes
// usable for login only after the confirmation token from the registration
// email has been presented.
type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`

	Confirmed bool `gorm:"default:false" json:"confirmed"`
	Admin     bool `gorm:"default:false" json:"admin"`

	// Single-use credential mailed at registration. Kept after a successful
	// confirm; replay is gated by the Confirmed flag.
	ConfirmToken string `gorm:"index" json:"-"`

	// Optional profile picture.
	PictureID *string `gorm:"type:text" json:"pictureId"`
	Picture   *Media  `gorm:"foreignKey:PictureID" json:"picture,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.ConfirmToken == "" {
		u.ConfirmToken = uuid.New().String()
	}
	return
}
