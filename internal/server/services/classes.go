package services

import (
	"context"
	"fmt"

	"flax/internal/common"
	"flax/internal/server/models"
	"flax/internal/server/store"
)

// ClassView is one entry in the class selection list. Joined tells the
// caller whether they can open the class directly or must supply the code.
type ClassView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Joined bool   `json:"joined"`
}

// ClassService handles class membership and active-class selection.
type ClassService struct {
	store *store.Manager
}

func NewClassService(m *store.Manager) *ClassService {
	return &ClassService{store: m}
}

// List returns all enabled classes with the caller's membership flag. Join
// codes are never exposed here.
func (s *ClassService) List(ctx context.Context, userID string) ([]ClassView, error) {
	var views []ClassView
	err := s.store.View(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}

		views = make([]ClassView, 0, len(doc.Classes))
		for _, class := range doc.Classes {
			if !class.Enabled {
				continue
			}
			views = append(views, ClassView{
				ID:     class.ID,
				Name:   class.Name,
				Joined: user.IsMemberOf(class.ID),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Join adds the caller to a class after checking its join code and makes it
// the active class. Joining a class the caller already belongs to is
// idempotent but still requires the correct code.
func (s *ClassService) Join(ctx context.Context, userID, classID, code string) error {
	return s.store.Update(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}

		class := doc.ClassByID(classID)
		if class == nil || !class.Enabled {
			return fmt.Errorf("class is disabled or does not exist: %w", common.ErrNotFound)
		}
		if code != class.Code {
			return fmt.Errorf("wrong class code: %w", common.ErrUnauthorized)
		}

		if !user.IsMemberOf(class.ID) {
			user.ClassIDs = append(user.ClassIDs, class.ID)
		}
		user.ActiveClassID = class.ID
		return nil
	})
}

// Select switches the caller's active class to one they already joined.
func (s *ClassService) Select(ctx context.Context, userID, classID string) error {
	return s.store.Update(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}

		if !user.IsMemberOf(classID) {
			return fmt.Errorf("not a member of this class: %w", common.ErrForbidden)
		}

		class := doc.ClassByID(classID)
		if class == nil || !class.Enabled {
			return fmt.Errorf("class is disabled or does not exist: %w", common.ErrNotFound)
		}

		user.ActiveClassID = class.ID
		return nil
	})
}
