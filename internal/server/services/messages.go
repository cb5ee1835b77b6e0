package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"flax/internal/common"
	"flax/internal/server/models"
	"flax/internal/server/store"
)

// AuthorInfo identifies the author of a message in the stream.
type AuthorInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// MessageView is one entry in the class chat stream.
type MessageView struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	Likes     int        `json:"likes"`
	LikedByMe bool       `json:"likedByMe"`
	Author    AuthorInfo `json:"author"`
}

// MessageService handles the message stream of the caller's active class.
type MessageService struct {
	store *store.Manager
}

func NewMessageService(m *store.Manager) *MessageService {
	return &MessageService{store: m}
}

// List returns the active class's stream, oldest first. Messages whose
// author no longer exists are treated as orphaned and skipped.
func (s *MessageService) List(ctx context.Context, userID string) ([]MessageView, error) {
	var views []MessageView
	err := s.store.View(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}
		class, err := requireActiveClass(doc, user)
		if err != nil {
			return err
		}

		views = make([]MessageView, 0)
		for i := range doc.Messages {
			msg := &doc.Messages[i]
			if msg.ClassID != class.ID {
				continue
			}
			author := doc.UserByID(msg.AuthorID)
			if author == nil {
				continue
			}
			views = append(views, MessageView{
				ID:        msg.ID,
				Text:      msg.Text,
				CreatedAt: msg.CreatedAt,
				Likes:     len(msg.LikedBy),
				LikedByMe: msg.LikedByUser(user.ID),
				Author:    AuthorInfo{ID: author.ID, Name: author.Name, Username: author.Username},
			})
		}
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].CreatedAt.Before(views[j].CreatedAt)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Post appends a message to the active class's stream and increments the
// caller's message counter. Text is trimmed and clipped to the length limit.
func (s *MessageService) Post(ctx context.Context, userID, text string) (*MessageView, error) {
	var view *MessageView
	err := s.store.Update(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}
		class, err := requireActiveClass(doc, user)
		if err != nil {
			return err
		}

		text = strings.TrimSpace(text)
		if text == "" {
			return fmt.Errorf("text is required: %w", common.ErrValidation)
		}
		if runes := []rune(text); len(runes) > models.MaxMessageTextLength {
			text = string(runes[:models.MaxMessageTextLength])
		}

		msg := models.Message{
			ID:        uuid.NewString(),
			ClassID:   class.ID,
			AuthorID:  user.ID,
			Text:      text,
			LikedBy:   []string{},
			CreatedAt: time.Now().UTC(),
		}
		doc.Messages = append(doc.Messages, msg)
		user.MessageCount++

		view = &MessageView{
			ID:        msg.ID,
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
			Author:    AuthorInfo{ID: user.ID, Name: user.Name, Username: user.Username},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Delete removes a message. Only the author or a DEV may delete; the
// author's message counter decrements but never drops below zero. Deleting
// the same message twice yields NotFound on the second call.
func (s *MessageService) Delete(ctx context.Context, userID, messageID string) error {
	return s.store.Update(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}

		msg := doc.MessageByID(messageID)
		if msg == nil {
			return fmt.Errorf("message not found: %w", common.ErrNotFound)
		}
		if msg.AuthorID != user.ID && !user.IsDev() {
			return fmt.Errorf("only the author or a DEV may delete: %w", common.ErrForbidden)
		}

		if author := doc.UserByID(msg.AuthorID); author != nil && author.MessageCount > 0 {
			author.MessageCount--
		}

		kept := doc.Messages[:0]
		for _, m := range doc.Messages {
			if m.ID != messageID {
				kept = append(kept, m)
			}
		}
		doc.Messages = kept
		return nil
	})
}

// ToggleLike flips the caller's like on a message in their active class.
// Unlike user-likes, liking one's own message is allowed.
func (s *MessageService) ToggleLike(ctx context.Context, userID, messageID string) error {
	return s.store.Update(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}
		class, err := requireActiveClass(doc, user)
		if err != nil {
			return err
		}

		msg := doc.MessageByID(messageID)
		if msg == nil || msg.ClassID != class.ID {
			return fmt.Errorf("message not found: %w", common.ErrNotFound)
		}

		msg.LikedBy = toggle(msg.LikedBy, user.ID)
		return nil
	})
}

// toggle adds id to the set if absent, removes it if present.
func toggle(set []string, id string) []string {
	for i, v := range set {
		if v == id {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, id)
}
