package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_UnknownTopLevelKeysSurviveRoundTrip(t *testing.T) {
	t.Parallel()

	in := []byte(`{
		"users": [{"id":"1234567","username":"alice","name":"Alice","passwordHash":"s:h","role":"USER","classIds":[],"activeClassId":"","likedBy":[],"messageCount":0}],
		"classes": [],
		"messages": [],
		"loginPodiumOrder": [],
		"settings": {"adminPasswordHash":"x"},
		"featureFlags": {"beta": true}
	}`)

	var doc Document
	require.NoError(t, json.Unmarshal(in, &doc))
	require.Len(t, doc.Users, 1)
	require.Contains(t, doc.Extra, "featureFlags")

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Contains(t, m, "featureFlags")
	assert.JSONEq(t, `{"beta": true}`, string(m["featureFlags"]))
	assert.Contains(t, m, "users")
}

func TestDocument_Lookups(t *testing.T) {
	t.Parallel()

	doc := Document{
		Users: []User{
			{ID: "1000001", Username: "Alice"},
			{ID: "1000002", Username: "bob"},
		},
		Classes: []Class{
			{ID: "c1", Code: "11111", Enabled: true},
		},
		Messages: []Message{
			{ID: "m1", ClassID: "c1", AuthorID: "1000001"},
		},
	}

	assert.Equal(t, "1000001", doc.UserByID("1000001").ID)
	assert.Nil(t, doc.UserByID("9999999"))

	// username lookup is case-insensitive
	assert.Equal(t, "1000001", doc.UserByUsername("ALICE").ID)
	assert.Nil(t, doc.UserByUsername("carol"))

	assert.Equal(t, "c1", doc.ClassByID("c1").ID)
	assert.Equal(t, "c1", doc.ClassByCode("11111").ID)
	assert.Nil(t, doc.ClassByCode("22222"))

	assert.Equal(t, "m1", doc.MessageByID("m1").ID)
	assert.Nil(t, doc.MessageByID("m2"))
}

func TestUser_Helpers(t *testing.T) {
	t.Parallel()

	u := User{ID: "1000001", Role: RoleDev, ClassIDs: []string{"c1"}, LikedBy: []string{"1000002"}}
	assert.True(t, u.IsDev())
	assert.True(t, u.IsMemberOf("c1"))
	assert.False(t, u.IsMemberOf("c2"))
	assert.True(t, u.LikedByUser("1000002"))
	assert.False(t, u.LikedByUser("1000003"))

	assert.True(t, ValidRole("USER"))
	assert.True(t, ValidRole("DEV"))
	assert.False(t, ValidRole("ADMIN"))
}
