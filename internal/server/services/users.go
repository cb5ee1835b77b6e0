package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flax/internal/common"
	"flax/internal/server/auth"
	"flax/internal/server/config"
	"flax/internal/server/models"
	"flax/internal/server/store"
)

// ClassInfo is the short class reference embedded in profile responses.
type ClassInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Profile is the caller's own view of their account, including the computed
// display role and the currently active class (nil when none is usable).
type Profile struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Username       string     `json:"username"`
	Role           RoleInfo   `json:"role"`
	Likes          int        `json:"likes"`
	Messages       int        `json:"messages"`
	HasJoinedClass bool       `json:"hasJoinedClass"`
	ActiveClass    *ClassInfo `json:"activeClass"`
}

// UserService handles registration, login and the self profile.
type UserService struct {
	store                 *store.Manager
	secretKey             []byte
	tokenValidityDuration time.Duration
	devUsernames          map[string]struct{}
}

// NewUserService constructs a UserService from the store and server config.
func NewUserService(m *store.Manager, cfg *config.Config) *UserService {
	dev := make(map[string]struct{}, len(cfg.DevUsernames))
	for _, name := range cfg.DevUsernames {
		dev[strings.ToLower(name)] = struct{}{}
	}
	return &UserService{
		store:                 m,
		secretKey:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		devUsernames:          dev,
	}
}

// Register creates a new account joined to the class matching classCode and
// returns the new user id. The class must exist and be enabled; usernames
// are unique case-insensitively.
func (s *UserService) Register(ctx context.Context, name, username, password, classCode string) (string, error) {
	if name == "" || username == "" || password == "" || classCode == "" {
		return "", fmt.Errorf("name, username, password, classCode are required: %w", common.ErrValidation)
	}
	if !common.IsDigitString(classCode, common.ClassCodeLength) {
		return "", fmt.Errorf("class code must be %d digits: %w", common.ClassCodeLength, common.ErrValidation)
	}

	var userID string
	err := s.store.Update(ctx, func(doc *models.Document) error {
		if doc.UserByUsername(username) != nil {
			return fmt.Errorf("username already exists: %w", common.ErrConflict)
		}

		class := doc.ClassByCode(classCode)
		if class == nil || !class.Enabled {
			return fmt.Errorf("class is disabled or does not exist: %w", common.ErrNotFound)
		}

		id, err := s.newUserID(doc)
		if err != nil {
			return err
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", common.ErrInternal)
		}

		role := models.RoleUser
		if _, ok := s.devUsernames[strings.ToLower(username)]; ok {
			role = models.RoleDev
		}

		doc.Users = append(doc.Users, models.User{
			ID:            id,
			Username:      username,
			Name:          name,
			PasswordHash:  hash,
			Role:          role,
			ClassIDs:      []string{class.ID},
			ActiveClassID: class.ID,
			LikedBy:       []string{},
		})
		userID = id
		return nil
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Login verifies credentials and mints a session token. A missing user and
// a wrong password are indistinguishable to the caller. The first three
// distinct non-DEV users to log in enter the podium.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}

	var token string
	err := s.store.Update(ctx, func(doc *models.Document) error {
		user := doc.UserByUsername(username)
		if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
			return fmt.Errorf("invalid credentials: %w", common.ErrUnauthorized)
		}

		promoteToPodium(doc, user)

		t, err := auth.GenerateToken(user.ID, s.secretKey, s.tokenValidityDuration)
		if err != nil {
			return fmt.Errorf("generate token: %w", common.ErrInternal)
		}
		token = t
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Me returns the caller's own profile.
func (s *UserService) Me(ctx context.Context, userID string) (*Profile, error) {
	var profile *Profile
	err := s.store.View(ctx, func(doc *models.Document) error {
		user, err := requireUser(doc, userID)
		if err != nil {
			return err
		}

		profile = &Profile{
			ID:             user.ID,
			Name:           user.Name,
			Username:       user.Username,
			Role:           RoleOf(user, doc),
			Likes:          len(user.LikedBy),
			Messages:       user.MessageCount,
			HasJoinedClass: len(user.ClassIDs) > 0,
		}
		if class, err := requireActiveClass(doc, user); err == nil {
			profile.ActiveClass = &ClassInfo{ID: class.ID, Name: class.Name}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// newUserID draws fresh 7-digit ids until one is free in the document.
func (s *UserService) newUserID(doc *models.Document) (string, error) {
	for {
		id, err := common.MakeRandDigitString(common.UserIDLength)
		if err != nil {
			return "", fmt.Errorf("generate user id: %w", common.ErrInternal)
		}
		if doc.UserByID(id) == nil {
			return id, nil
		}
	}
}
