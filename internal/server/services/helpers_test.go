package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flax/internal/logging"
	"flax/internal/server/config"
	"flax/internal/server/models"
	"flax/internal/server/store"
)

func testLogger() logging.Logger {
	return logging.NewDiscardLogger()
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.TokenValidityDuration = time.Hour
	return cfg
}

func newTestStore(t *testing.T) *store.Manager {
	t.Helper()
	port := store.NewFilePort(filepath.Join(t.TempDir(), "store.json"))
	return store.NewManager(port, testLogger())
}

// newBootstrappedStore returns a manager holding the bootstrap state: the
// admin password "12345" and an enabled "Class A" with code "11111".
func newBootstrappedStore(t *testing.T) *store.Manager {
	t.Helper()
	m := newTestStore(t)
	admin := NewAdminService(m, testLogger(), testConfig())
	require.NoError(t, admin.Bootstrap(context.Background()))
	return m
}

func bootstrapClassID(t *testing.T, m *store.Manager) string {
	t.Helper()
	var id string
	require.NoError(t, m.View(context.Background(), func(doc *models.Document) error {
		require.NotEmpty(t, doc.Classes)
		id = doc.Classes[0].ID
		return nil
	}))
	return id
}

// registerUser creates an account through the real registration path and
// returns its id.
func registerUser(t *testing.T, m *store.Manager, cfg *config.Config, name, username string) string {
	t.Helper()
	users := NewUserService(m, cfg)
	id, err := users.Register(context.Background(), name, username, "pass-"+username, "11111")
	require.NoError(t, err)
	return id
}
