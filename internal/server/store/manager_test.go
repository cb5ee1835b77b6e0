package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flax/internal/logging"
	"flax/internal/server/models"
)

// fakePort is an in-memory Port with scriptable failures.
type fakePort struct {
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (p *fakePort) Load(ctx context.Context) ([]byte, bool, error) {
	if p.loadErr != nil {
		return nil, false, p.loadErr
	}
	if p.data == nil {
		return nil, false, nil
	}
	return p.data, true, nil
}

func (p *fakePort) Save(ctx context.Context, data []byte) error {
	p.saves++
	if p.saveErr != nil {
		return p.saveErr
	}
	p.data = data
	return nil
}

func newTestManager(t *testing.T, port Port) *Manager {
	t.Helper()
	return NewManager(port, logging.NewDiscardLogger())
}

func TestManager_FirstUseInitializesFromBase(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, &fakePort{})

	err := m.View(context.Background(), func(doc *models.Document) error {
		assert.Empty(t, doc.Users)
		assert.Empty(t, doc.Classes)
		assert.Empty(t, doc.Messages)
		assert.Empty(t, doc.LoginPodiumOrder)
		assert.Empty(t, doc.Settings.AdminPasswordHash)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_UpdatePersistsAndReloads(t *testing.T) {
	t.Parallel()

	port := &fakePort{}
	m := newTestManager(t, port)
	ctx := context.Background()

	err := m.Update(ctx, func(doc *models.Document) error {
		doc.Users = append(doc.Users, models.User{ID: "1234567", Username: "alice", Role: models.RoleUser})
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, port.saves)

	// what was saved is a structurally complete document
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(port.data, &raw))
	for _, key := range []string{"users", "classes", "messages", "loginPodiumOrder", "settings"} {
		assert.Contains(t, raw, key)
	}

	err = m.View(ctx, func(doc *models.Document) error {
		require.Len(t, doc.Users, 1)
		assert.Equal(t, "alice", doc.Users[0].Username)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_CallbackErrorAbortsSave(t *testing.T) {
	t.Parallel()

	port := &fakePort{}
	m := newTestManager(t, port)

	boom := errors.New("boom")
	err := m.Update(context.Background(), func(doc *models.Document) error {
		doc.Users = append(doc.Users, models.User{ID: "1234567"})
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, port.saves)

	// the aborted mutation is not visible afterwards
	err = m.View(context.Background(), func(doc *models.Document) error {
		assert.Empty(t, doc.Users)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_SaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	t.Parallel()

	port := &fakePort{saveErr: errors.New("disk full")}
	m := newTestManager(t, port)
	ctx := context.Background()

	err := m.Update(ctx, func(doc *models.Document) error {
		doc.Settings.AdminPasswordHash = "salt:hash"
		return nil
	})
	require.NoError(t, err, "save failures are swallowed")

	err = m.View(ctx, func(doc *models.Document) error {
		assert.Equal(t, "salt:hash", doc.Settings.AdminPasswordHash)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_LoadFailureFallsBackToMemory(t *testing.T) {
	t.Parallel()

	port := &fakePort{}
	m := newTestManager(t, port)
	ctx := context.Background()

	require.NoError(t, m.Update(ctx, func(doc *models.Document) error {
		doc.Users = append(doc.Users, models.User{ID: "1234567"})
		return nil
	}))

	port.loadErr = errors.New("connection refused")

	err := m.View(ctx, func(doc *models.Document) error {
		assert.Len(t, doc.Users, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_OutageKeepsLastLoadedState(t *testing.T) {
	t.Parallel()

	// the document was written by another process; this one only ever reads
	port := &fakePort{data: []byte(`{"users":[{"id":"1234567","username":"alice","name":"Alice","passwordHash":"s:h","role":"USER","classIds":[],"likedBy":[],"messageCount":0}],"classes":[],"messages":[],"loginPodiumOrder":[],"settings":{"adminPasswordHash":"salt:hash"}}`)}
	m := newTestManager(t, port)
	ctx := context.Background()

	require.NoError(t, m.View(ctx, func(doc *models.Document) error {
		require.Len(t, doc.Users, 1)
		return nil
	}))

	port.loadErr = errors.New("connection refused")

	err := m.View(ctx, func(doc *models.Document) error {
		require.Len(t, doc.Users, 1)
		assert.Equal(t, "alice", doc.Users[0].Username)
		assert.Equal(t, "salt:hash", doc.Settings.AdminPasswordHash)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_FailedCallbackDoesNotTaintLoadedState(t *testing.T) {
	t.Parallel()

	port := &fakePort{data: []byte(`{"users":[],"classes":[],"messages":[],"loginPodiumOrder":[],"settings":{"adminPasswordHash":"h"}}`)}
	m := newTestManager(t, port)
	ctx := context.Background()

	boom := errors.New("boom")
	require.ErrorIs(t, m.Update(ctx, func(doc *models.Document) error {
		doc.Users = append(doc.Users, models.User{ID: "1234567"})
		return boom
	}), boom)

	port.loadErr = errors.New("connection refused")

	err := m.View(ctx, func(doc *models.Document) error {
		assert.Empty(t, doc.Users, "aborted mutation must not leak into the fallback copy")
		return nil
	})
	require.NoError(t, err)
}

func TestManager_CorruptStoredDocumentFallsBack(t *testing.T) {
	t.Parallel()

	port := &fakePort{data: []byte("{not json")}
	m := newTestManager(t, port)

	err := m.View(context.Background(), func(doc *models.Document) error {
		assert.Empty(t, doc.Users)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_OldSchemaDocumentGainsNewFields(t *testing.T) {
	t.Parallel()

	// a document written before loginPodiumOrder and settings existed
	port := &fakePort{data: []byte(`{"users":[{"id":"1000001","username":"old","name":"Old","passwordHash":"s:h","role":"USER","classIds":[],"likedBy":[],"messageCount":0}],"classes":[],"messages":[]}`)}
	m := newTestManager(t, port)

	err := m.View(context.Background(), func(doc *models.Document) error {
		require.Len(t, doc.Users, 1)
		assert.NotNil(t, doc.LoginPodiumOrder)
		assert.Empty(t, doc.LoginPodiumOrder)
		assert.Empty(t, doc.Settings.AdminPasswordHash)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_UnknownKeysSurviveUpdate(t *testing.T) {
	t.Parallel()

	port := &fakePort{data: []byte(`{"users":[],"futureFeature":{"x":1}}`)}
	m := newTestManager(t, port)
	ctx := context.Background()

	require.NoError(t, m.Update(ctx, func(doc *models.Document) error {
		doc.Settings.AdminPasswordHash = "h"
		return nil
	}))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(port.data, &raw))
	require.Contains(t, raw, "futureFeature")
	assert.JSONEq(t, `{"x":1}`, string(raw["futureFeature"]))
}

func TestManager_UnknownSettingsKeysSurviveUpdate(t *testing.T) {
	t.Parallel()

	port := &fakePort{data: []byte(`{"settings":{"adminPasswordHash":"x","theme":"dark"}}`)}
	m := newTestManager(t, port)
	ctx := context.Background()

	require.NoError(t, m.Update(ctx, func(doc *models.Document) error {
		return nil
	}))

	var raw struct {
		Settings map[string]json.RawMessage `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(port.data, &raw))
	assert.JSONEq(t, `"x"`, string(raw.Settings["adminPasswordHash"]))
	require.Contains(t, raw.Settings, "theme")
	assert.JSONEq(t, `"dark"`, string(raw.Settings["theme"]))
}
