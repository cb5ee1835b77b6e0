package models

// Class is a password-gated group. Code is exactly five ASCII digits and
// unique among all classes, enabled or not. Enabled gates joinability only;
// existing members of a disabled class keep their membership but cannot
// select it as the active class.
type Class struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Enabled bool   `json:"enabled"`
}
