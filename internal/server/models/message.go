package models

import (
	"slices"
	"time"
)

// Message is a single chat entry in a class stream. Text is trimmed and at
// most MaxMessageTextLength characters. CreatedAt orders the stream,
// oldest first.
type Message struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"classId"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	LikedBy   []string  `json:"likedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// MaxMessageTextLength is the clip limit for message text, in characters.
const MaxMessageTextLength = 500

// LikedByUser reports whether the given user id has liked this message.
func (m *Message) LikedByUser(id string) bool {
	return slices.Contains(m.LikedBy, id)
}
