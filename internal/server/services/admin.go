package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"flax/internal/common"
	"flax/internal/logging"
	"flax/internal/server/auth"
	"flax/internal/server/config"
	"flax/internal/server/models"
	"flax/internal/server/store"
)

// AdminUserView is one entry in the admin user listing.
type AdminUserView struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Username string      `json:"username"`
	ClassIDs []string    `json:"classIds"`
	Role     models.Role `json:"role"`
	Likes    int         `json:"likes"`
	Messages int         `json:"messages"`
}

// ClassUpdate carries a partial class edit; nil fields are left unchanged.
type ClassUpdate struct {
	Name    *string `json:"name"`
	Code    *string `json:"code"`
	Enabled *bool   `json:"enabled"`
}

// AdminService implements the admin surface. There is no admin session: the
// raw admin password is verified against the stored hash on every call.
type AdminService struct {
	store                *store.Manager
	logger               logging.Logger
	defaultAdminPassword string
}

func NewAdminService(m *store.Manager, logger logging.Logger, cfg *config.Config) *AdminService {
	return &AdminService{
		store:                m,
		logger:               logger.With("module", "admin"),
		defaultAdminPassword: cfg.AdminPassword,
	}
}

// Bootstrap establishes the minimum usable state on startup: an admin
// password hash and at least one class to register into.
func (s *AdminService) Bootstrap(ctx context.Context) error {
	return s.store.Update(ctx, func(doc *models.Document) error {
		if doc.Settings.AdminPasswordHash == "" {
			hash, err := auth.HashPassword(s.defaultAdminPassword)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			doc.Settings.AdminPasswordHash = hash
			s.logger.Info(ctx, "admin password initialized from config")
		}

		if len(doc.Classes) == 0 {
			doc.Classes = append(doc.Classes, models.Class{
				ID:      uuid.NewString(),
				Name:    "Class A",
				Code:    "11111",
				Enabled: true,
			})
			s.logger.Info(ctx, "bootstrap class created", "name", "Class A")
		}
		return nil
	})
}

// Verify checks a raw admin password against the stored hash.
func (s *AdminService) Verify(ctx context.Context, password string) error {
	return s.store.View(ctx, func(doc *models.Document) error {
		if password == "" || !auth.VerifyPassword(password, doc.Settings.AdminPasswordHash) {
			return fmt.Errorf("invalid admin password: %w", common.ErrUnauthorized)
		}
		return nil
	})
}

// ChangePassword replaces the admin password. The new password keeps the
// historical 5-digit format.
func (s *AdminService) ChangePassword(ctx context.Context, current, newPassword string) error {
	if current == "" || newPassword == "" {
		return fmt.Errorf("currentPassword and newPassword are required: %w", common.ErrValidation)
	}
	if !common.IsDigitString(newPassword, 5) {
		return fmt.Errorf("newPassword must be 5 digits: %w", common.ErrValidation)
	}

	return s.store.Update(ctx, func(doc *models.Document) error {
		if !auth.VerifyPassword(current, doc.Settings.AdminPasswordHash) {
			return fmt.Errorf("current password is incorrect: %w", common.ErrUnauthorized)
		}
		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", common.ErrInternal)
		}
		doc.Settings.AdminPasswordHash = hash
		return nil
	})
}

// ListUsers returns all accounts with their stored role and counters.
func (s *AdminService) ListUsers(ctx context.Context) ([]AdminUserView, error) {
	var views []AdminUserView
	err := s.store.View(ctx, func(doc *models.Document) error {
		views = make([]AdminUserView, 0, len(doc.Users))
		for i := range doc.Users {
			u := &doc.Users[i]
			views = append(views, AdminUserView{
				ID:       u.ID,
				Name:     u.Name,
				Username: u.Username,
				ClassIDs: u.ClassIDs,
				Role:     u.Role,
				Likes:    len(u.LikedBy),
				Messages: u.MessageCount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// UpdateUserRole assigns the permanent stored role of a user.
func (s *AdminService) UpdateUserRole(ctx context.Context, userID, role string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("role must be USER or DEV: %w", common.ErrValidation)
	}

	return s.store.Update(ctx, func(doc *models.Document) error {
		user := doc.UserByID(userID)
		if user == nil {
			return fmt.Errorf("user not found: %w", common.ErrNotFound)
		}
		user.Role = models.Role(role)
		return nil
	})
}

// DeleteUser removes an account and every dangling reference to it: the
// authored messages, the likes it handed out and its podium entry. Other
// podium entries keep their positions.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	return s.store.Update(ctx, func(doc *models.Document) error {
		if doc.UserByID(userID) == nil {
			return fmt.Errorf("user not found: %w", common.ErrNotFound)
		}

		doc.Users = slices.DeleteFunc(doc.Users, func(u models.User) bool {
			return u.ID == userID
		})
		doc.Messages = slices.DeleteFunc(doc.Messages, func(m models.Message) bool {
			return m.AuthorID == userID
		})
		doc.LoginPodiumOrder = slices.DeleteFunc(doc.LoginPodiumOrder, func(id string) bool {
			return id == userID
		})

		for i := range doc.Users {
			doc.Users[i].LikedBy = slices.DeleteFunc(doc.Users[i].LikedBy, func(id string) bool {
				return id == userID
			})
		}
		for i := range doc.Messages {
			doc.Messages[i].LikedBy = slices.DeleteFunc(doc.Messages[i].LikedBy, func(id string) bool {
				return id == userID
			})
		}
		return nil
	})
}

// ListClasses returns all classes, join codes included.
func (s *AdminService) ListClasses(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	err := s.store.View(ctx, func(doc *models.Document) error {
		classes = slices.Clone(doc.Classes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return classes, nil
}

// CreateClass adds a new enabled class with a unique 5-digit join code.
func (s *AdminService) CreateClass(ctx context.Context, name, code string) (*models.Class, error) {
	if name == "" || !common.IsDigitString(code, common.ClassCodeLength) {
		return nil, fmt.Errorf("name and %d-digit code are required: %w", common.ClassCodeLength, common.ErrValidation)
	}

	var class models.Class
	err := s.store.Update(ctx, func(doc *models.Document) error {
		if doc.ClassByCode(code) != nil {
			return fmt.Errorf("class code already exists: %w", common.ErrConflict)
		}
		class = models.Class{
			ID:      uuid.NewString(),
			Name:    name,
			Code:    code,
			Enabled: true,
		}
		doc.Classes = append(doc.Classes, class)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// UpdateClass applies a partial edit. A new code must stay 5 digits and
// unique among all other classes.
func (s *AdminService) UpdateClass(ctx context.Context, classID string, upd ClassUpdate) (*models.Class, error) {
	var class models.Class
	err := s.store.Update(ctx, func(doc *models.Document) error {
		c := doc.ClassByID(classID)
		if c == nil {
			return fmt.Errorf("class not found: %w", common.ErrNotFound)
		}

		if upd.Code != nil {
			if !common.IsDigitString(*upd.Code, common.ClassCodeLength) {
				return fmt.Errorf("code must be %d digits: %w", common.ClassCodeLength, common.ErrValidation)
			}
			if other := doc.ClassByCode(*upd.Code); other != nil && other.ID != classID {
				return fmt.Errorf("class code already used: %w", common.ErrConflict)
			}
			c.Code = *upd.Code
		}
		if upd.Name != nil {
			c.Name = *upd.Name
		}
		if upd.Enabled != nil {
			c.Enabled = *upd.Enabled
		}

		class = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// DeleteClass removes a class and everything scoped to it: its messages,
// every membership and every active-class reference. Authors of removed
// messages get their counters adjusted.
func (s *AdminService) DeleteClass(ctx context.Context, classID string) error {
	return s.store.Update(ctx, func(doc *models.Document) error {
		if doc.ClassByID(classID) == nil {
			return fmt.Errorf("class not found: %w", common.ErrNotFound)
		}

		doc.Classes = slices.DeleteFunc(doc.Classes, func(c models.Class) bool {
			return c.ID == classID
		})

		for _, m := range doc.Messages {
			if m.ClassID != classID {
				continue
			}
			if author := doc.UserByID(m.AuthorID); author != nil && author.MessageCount > 0 {
				author.MessageCount--
			}
		}
		doc.Messages = slices.DeleteFunc(doc.Messages, func(m models.Message) bool {
			return m.ClassID == classID
		})

		for i := range doc.Users {
			u := &doc.Users[i]
			u.ClassIDs = slices.DeleteFunc(u.ClassIDs, func(id string) bool {
				return id == classID
			})
			if u.ActiveClassID == classID {
				u.ActiveClassID = ""
			}
		}
		return nil
	})
}
