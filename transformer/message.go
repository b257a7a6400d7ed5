// Package transformer shapes models into the JSON documents returned to clients.
package transformer

import (
	"time"

	"messenger/model"

	"github.com/samber/lo"
)

// DateTimeFormat is how timestamps are rendered in responses.
const DateTimeFormat = "2006-01-02 15:04:05"

type Message struct {
	ID        string `json:"id"`
	UserID    uint   `json:"userId"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Document is the response envelope for both single items and collections.
type Document[T any] struct {
	Data T `json:"data"`
}

func TransformMessage(m model.Message) Message {
	return Message{
		ID:        m.UID,
		UserID:    m.UserId,
		Subject:   m.Subject,
		Message:   m.Message,
		CreatedAt: formatTime(m.CreatedAt),
		UpdatedAt: formatTime(m.UpdatedAt),
	}
}

func TransformMessages(ms []model.Message) []Message {
	if len(ms) == 0 {
		return []Message{}
	}
	return lo.Map(ms, func(m model.Message, _ int) Message {
		return TransformMessage(m)
	})
}

func Item[T any](v T) Document[T] {
	return Document[T]{Data: v}
}

func Collection[T any](vs []T) Document[[]T] {
	if vs == nil {
		vs = []T{}
	}
	return Document[[]T]{Data: vs}
}

func formatTime(t time.Time) string {
	return t.Format(DateTimeFormat)
}
