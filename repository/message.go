package repository

import (
	"messenger/model"

	"gorm.io/gorm"
)

// MessageRepository is the gateway for messages, keyed by their UID.
type MessageRepository = Repository[model.Message]

var messageFilters = map[string]string{
	"id":      "uid",
	"userId":  "user_id",
	"subject": "subject",
	"message": "message",
}

func NewMessageRepository(db *gorm.DB) *GormRepository[model.Message] {
	return NewGormRepository[model.Message](db, "uid", messageFilters)
}
