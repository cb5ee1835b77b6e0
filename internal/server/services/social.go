package services

import (
	"context"
	"fmt"

	"flax/internal/common"
	"flax/internal/server/models"
	"flax/internal/server/store"
)

// ClassmateView is one entry in the classmate listing or a profile lookup.
type ClassmateView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Username  string   `json:"username"`
	Role      RoleInfo `json:"role"`
	Likes     int      `json:"likes"`
	Messages  int      `json:"messages"`
	LikedByMe bool     `json:"likedByMe"`
}

// SocialService handles classmate listings, cross-profile reads and the
// user-like toggle. All of it is scoped to the caller's active class.
type SocialService struct {
	store *store.Manager
}

func NewSocialService(m *store.Manager) *SocialService {
	return &SocialService{store: m}
}

// Classmates lists the members of the caller's active class, excluding the
// caller themselves.
func (s *SocialService) Classmates(ctx context.Context, userID string) ([]ClassmateView, error) {
	var views []ClassmateView
	err := s.store.View(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}
		class, err := requireActiveClass(doc, user)
		if err != nil {
			return err
		}

		views = make([]ClassmateView, 0)
		for i := range doc.Users {
			other := &doc.Users[i]
			if other.ID == user.ID || !other.IsMemberOf(class.ID) {
				continue
			}
			views = append(views, classmateView(other, user, doc))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Profile returns another member's profile. Cross-class access is denied:
// the target must share the caller's active class.
func (s *SocialService) Profile(ctx context.Context, userID, targetID string) (*ClassmateView, error) {
	var view *ClassmateView
	err := s.store.View(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}
		class, err := requireActiveClass(doc, user)
		if err != nil {
			return err
		}

		target := doc.UserByID(targetID)
		if target == nil || !target.IsMemberOf(class.ID) {
			return fmt.Errorf("user not found: %w", common.ErrNotFound)
		}

		v := classmateView(target, user, doc)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ToggleLike flips the caller's like on another user. Liking oneself is
// rejected, and the target must share the caller's active class. Toggling
// twice restores the original state.
func (s *SocialService) ToggleLike(ctx context.Context, userID, targetID string) (*ClassmateView, error) {
	var view *ClassmateView
	err := s.store.Update(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}
		class, err := requireActiveClass(doc, user)
		if err != nil {
			return err
		}

		if targetID == user.ID {
			return fmt.Errorf("cannot like yourself: %w", common.ErrValidation)
		}

		target := doc.UserByID(targetID)
		if target == nil || !target.IsMemberOf(class.ID) {
			return fmt.Errorf("user not found: %w", common.ErrNotFound)
		}

		target.LikedBy = toggle(target.LikedBy, user.ID)

		v := classmateView(target, user, doc)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func classmateView(target, viewer *models.User, doc *models.Document) ClassmateView {
	return ClassmateView{
		ID:        target.ID,
		Name:      target.Name,
		Username:  target.Username,
		Role:      RoleOf(target, doc),
		Likes:     len(target.LikedBy),
		Messages:  target.MessageCount,
		LikedByMe: target.LikedByUser(viewer.ID),
	}
}
