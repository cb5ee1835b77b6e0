// Package models defines the persisted entities of the Flax store document.
// The json tags are the on-disk and wire contract; documents written by
// older schema versions must keep loading, so fields are only ever added.
package models

import "slices"

// Role is a permanent, admin-assignable user role.
type Role string

const (
	RoleUser Role = "USER"
	RoleDev  Role = "DEV"
)

// ValidRole reports whether s is one of the assignable roles.
func ValidRole(s string) bool {
	return s == string(RoleUser) || s == string(RoleDev)
}

// User is a registered account. ID is a 7-digit numeric string, unique
// across the document. Username is unique case-insensitively.
type User struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	Name          string   `json:"name"`
	PasswordHash  string   `json:"passwordHash"`
	Role          Role     `json:"role"`
	ClassIDs      []string `json:"classIds"`
	ActiveClassID string   `json:"activeClassId"`
	LikedBy       []string `json:"likedBy"`
	MessageCount  int      `json:"messageCount"`
}

// IsDev reports whether the user holds the permanent elevated role.
func (u *User) IsDev() bool {
	return u.Role == RoleDev
}

// IsMemberOf reports whether the user has joined the given class.
func (u *User) IsMemberOf(classID string) bool {
	return slices.Contains(u.ClassIDs, classID)
}

// LikedByUser reports whether the given user id has liked this user.
func (u *User) LikedByUser(id string) bool {
	return slices.Contains(u.LikedBy, id)
}
