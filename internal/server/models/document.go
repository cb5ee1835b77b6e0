package models

import (
	"encoding/json"
	"strings"
)

// Settings holds document-wide configuration. AdminPasswordHash is never
// empty after bootstrap.
//
// Extra preserves settings keys written by newer schema versions, same as
// Document.Extra does at the top level.
type Settings struct {
	AdminPasswordHash string `json:"adminPasswordHash"`

	Extra map[string]json.RawMessage `json:"-"`
}

// knownSettingsKeys are the settings keys owned by this schema version.
var knownSettingsKeys = []string{"adminPasswordHash"}

func (s *Settings) UnmarshalJSON(b []byte) error {
	type alias Settings
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, k := range knownSettingsKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		a.Extra = raw
	}

	*s = Settings(a)
	return nil
}

func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Extra)+len(knownSettingsKeys))
	for k, v := range s.Extra {
		out[k] = v
	}

	type alias Settings
	known, err := json.Marshal(alias(s))
	if err != nil {
		return nil, err
	}
	var knownMap map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownMap); err != nil {
		return nil, err
	}
	for k, v := range knownMap {
		out[k] = v
	}

	return json.Marshal(out)
}

// Document is the aggregate root: the entire application state persisted as
// one JSON document. The document as a whole is the unit of persistence;
// there is no sub-document locking.
//
// Extra preserves top-level keys written by newer schema versions (or other
// tools) so that a load-mutate-save cycle does not drop them.
type Document struct {
	Users            []User    `json:"users"`
	Classes          []Class   `json:"classes"`
	Messages         []Message `json:"messages"`
	LoginPodiumOrder []string  `json:"loginPodiumOrder"`
	Settings         Settings  `json:"settings"`

	Extra map[string]json.RawMessage `json:"-"`
}

// knownDocumentKeys are the top-level keys owned by this schema version.
var knownDocumentKeys = []string{"users", "classes", "messages", "loginPodiumOrder", "settings"}

// UnmarshalJSON decodes the known schema fields and stashes every unknown
// top-level key into Extra.
func (d *Document) UnmarshalJSON(b []byte) error {
	type alias Document
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, k := range knownDocumentKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		a.Extra = raw
	}

	*d = Document(a)
	return nil
}

// MarshalJSON emits the known schema fields overlaid on any preserved
// unknown keys.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.Extra)+len(knownDocumentKeys))
	for k, v := range d.Extra {
		out[k] = v
	}

	type alias Document
	known, err := json.Marshal(alias(d))
	if err != nil {
		return nil, err
	}
	var knownMap map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownMap); err != nil {
		return nil, err
	}
	for k, v := range knownMap {
		out[k] = v
	}

	return json.Marshal(out)
}

// UserByID returns the user with the given id, or nil.
func (d *Document) UserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByUsername returns the user with the given username, compared
// case-insensitively, or nil.
func (d *Document) UserByUsername(username string) *User {
	normalized := strings.ToLower(username)
	for i := range d.Users {
		if strings.ToLower(d.Users[i].Username) == normalized {
			return &d.Users[i]
		}
	}
	return nil
}

// ClassByID returns the class with the given id, or nil.
func (d *Document) ClassByID(id string) *Class {
	for i := range d.Classes {
		if d.Classes[i].ID == id {
			return &d.Classes[i]
		}
	}
	return nil
}

// ClassByCode returns the class with the given join code, or nil. Codes are
// unique among all classes regardless of the enabled flag.
func (d *Document) ClassByCode(code string) *Class {
	for i := range d.Classes {
		if d.Classes[i].Code == code {
			return &d.Classes[i]
		}
	}
	return nil
}

// MessageByID returns the message with the given id, or nil.
func (d *Document) MessageByID(id string) *Message {
	for i := range d.Messages {
		if d.Messages[i].ID == id {
			return &d.Messages[i]
		}
	}
	return nil
}
