// Package services contains server-side business logic: registration and
// login, class membership, the message stream, user likes and the admin
// surface. Every operation runs inside a single store.Manager Update or
// View, so each request is one atomic load-mutate-save unit.
package services

import (
	"slices"

	"flax/internal/server/models"
)

// RoleInfo is the computed display role of a user. Key is stable and
// machine-readable, Label and Design feed the UI directly.
type RoleInfo struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Design string `json:"design"`
}

// maxPodiumSize caps the login podium at the first three non-DEV users.
const maxPodiumSize = 3

// RoleOf computes the display role of a user. The permanent DEV role wins;
// otherwise the position in the login podium decides the tier. The podium is
// cosmetic state and never stored on the user itself.
func RoleOf(user *models.User, doc *models.Document) RoleInfo {
	if user.IsDev() {
		return RoleInfo{Key: "DEV", Label: "DEV", Design: "diamond"}
	}
	switch slices.Index(doc.LoginPodiumOrder, user.ID) {
	case 0:
		return RoleInfo{Key: "FIRST_USER", Label: "First user 👑", Design: "gold"}
	case 1:
		return RoleInfo{Key: "SECOND_USER", Label: "Second user", Design: "silver"}
	case 2:
		return RoleInfo{Key: "THIRD_USER", Label: "Third user", Design: "bronze"}
	}
	return RoleInfo{Key: "USER", Label: "USER", Design: "default"}
}

// promoteToPodium appends a user to the login podium on their first
// successful login. DEV users never enter, each id enters at most once and
// the podium never grows past three entries.
func promoteToPodium(doc *models.Document, user *models.User) {
	if user.IsDev() {
		return
	}
	if len(doc.LoginPodiumOrder) >= maxPodiumSize {
		return
	}
	if slices.Contains(doc.LoginPodiumOrder, user.ID) {
		return
	}
	doc.LoginPodiumOrder = append(doc.LoginPodiumOrder, user.ID)
}
