package services

import (
	"fmt"

	"flax/internal/common"
	"flax/internal/server/models"
)

// requireUser resolves a session user id against the document. A token can
// outlive its user (admin deletion), so a miss is an authentication failure,
// not a lookup failure.
func requireUser(doc *models.Document, userID string) (*models.User, error) {
	user := doc.UserByID(userID)
	if user == nil {
		return nil, fmt.Errorf("unknown user: %w", common.ErrUnauthorized)
	}
	return user, nil
}

// requireActiveClass gates every class-scoped operation: the caller must
// have an active class, still be a member of it, and the class must still
// exist and be enabled. Anything else tells the caller to join or select a
// class first.
func requireActiveClass(doc *models.Document, user *models.User) (*models.Class, error) {
	if user.ActiveClassID == "" {
		return nil, fmt.Errorf("join or select a class first: %w", common.ErrForbidden)
	}
	if !user.IsMemberOf(user.ActiveClassID) {
		return nil, fmt.Errorf("join or select a class first: %w", common.ErrForbidden)
	}
	class := doc.ClassByID(user.ActiveClassID)
	if class == nil || !class.Enabled {
		return nil, fmt.Errorf("join or select a class first: %w", common.ErrForbidden)
	}
	return class, nil
}
