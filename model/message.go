package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a note written by a user. UID is the identifier exposed to clients,
// ID never leaves the database.
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UID       string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"uid"`
	UserId    uint      `gorm:"not null;index" json:"user_id"`
	Subject   string    `gorm:"type:varchar(255);not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the external identifier.
func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.UID == "" {
		m.UID = uuid.New().String()
	}
	return nil
}
