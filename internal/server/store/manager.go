package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"flax/internal/logging"
	"flax/internal/server/models"
)

// Manager owns the load-mutate-save lifecycle of the state document.
//
// Every Update and View re-reads the backing Port, merges the raw document
// with the base schema and hands a typed document to the callback. A mutex
// serializes the whole unit, so two concurrent requests cannot interleave
// their load/save windows and silently lose an update.
//
// Persistence is best-effort: a failed Load falls back to the last known
// in-memory copy (or the base schema on first use), and a failed Save is
// logged while the in-memory copy remains the source of truth for
// subsequent reads within this process lifetime.
type Manager struct {
	mu     sync.Mutex
	port   Port
	logger logging.Logger
	memory *models.Document
}

func NewManager(port Port, logger logging.Logger) *Manager {
	return &Manager{
		port:   port,
		logger: logger.With("module", "store"),
	}
}

// Update runs fn against the current document and, if fn succeeds, adopts
// the mutated document as the in-memory copy and persists it. An error from
// fn aborts the cycle without touching the stored state.
func (m *Manager) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := m.load(ctx)
	if err := fn(doc); err != nil {
		return err
	}

	m.memory = doc
	m.save(ctx, doc)
	return nil
}

// View runs fn against the current document without persisting afterwards.
// The callback must not retain the document past its return.
func (m *Manager) View(ctx context.Context, fn func(doc *models.Document) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := m.load(ctx)
	return fn(doc)
}

// load produces a typed document from the port, merged with the base
// schema. Any failure degrades to the in-memory copy, and failing that, to
// the base schema itself.
func (m *Manager) load(ctx context.Context) *models.Document {
	data, ok, err := m.port.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "load failed, using in-memory state", "error", err.Error())
		return m.fallback(ctx)
	}
	if !ok {
		return m.fallback(ctx)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		m.logger.Warn(ctx, "stored document is unreadable, using in-memory state", "error", err.Error())
		return m.fallback(ctx)
	}

	// Adopt a separate decode as the in-memory copy so that a later backend
	// outage degrades to this state, not to the base schema. The returned
	// document must not alias it: the callback may mutate and then fail.
	if snapshot, serr := decodeDocument(data); serr == nil {
		m.memory = snapshot
	}
	return doc
}

// fallback returns a mutation-safe copy of the in-memory document, or a
// fresh document built from the base schema when nothing was ever loaded.
func (m *Manager) fallback(ctx context.Context) *models.Document {
	if m.memory == nil {
		doc, err := decodeDocument([]byte("{}"))
		if err != nil {
			// The base schema always decodes; reaching this is a programming error.
			panic(fmt.Sprintf("store: base schema does not decode: %v", err))
		}
		return doc
	}

	data, err := json.Marshal(m.memory)
	if err == nil {
		doc, derr := decodeDocument(data)
		if derr == nil {
			return doc
		}
		err = derr
	}
	m.logger.Error(ctx, "in-memory document clone failed", "error", err.Error())
	return m.memory
}

// save merges the document with the base schema one more time (mirroring
// the shape enforced on load) and writes it through the port. Errors are
// swallowed after logging: the in-memory copy stays authoritative.
func (m *Manager) save(ctx context.Context, doc *models.Document) {
	data, err := encodeDocument(doc)
	if err != nil {
		m.logger.Error(ctx, "document encode failed, state kept in memory only", "error", err.Error())
		return
	}
	if err := m.port.Save(ctx, data); err != nil {
		m.logger.Error(ctx, "save failed, state kept in memory only", "error", err.Error())
	}
}

// decodeDocument unmarshals raw document bytes, reconciles them with the
// base schema via Merge and produces the typed document. Unknown top-level
// keys survive the round trip (models.Document.Extra).
func decodeDocument(data []byte) (*models.Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	merged := Merge(raw, BaseDocument())
	normalized, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}

	doc := &models.Document{}
	if err := json.Unmarshal(normalized, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// encodeDocument is the inverse of decodeDocument: typed document to
// indented JSON, merged with the base schema so a saved document is always
// structurally complete.
func encodeDocument(doc *models.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return json.MarshalIndent(Merge(raw, BaseDocument()), "", "  ")
}
