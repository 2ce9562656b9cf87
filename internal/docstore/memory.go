package docstore

import (
	"context"
	"sort"
	"sync"
)

// MemoryClient is an in-process Client used by tests and local runs.
// It mimics the remote store's semantics exactly: create-only-if-absent,
// idempotent delete, full-collection scans.
type MemoryClient struct {
	mu          sync.RWMutex
	collections map[string]map[string]Fields
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{collections: make(map[string]map[string]Fields)}
}

func (m *MemoryClient) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields, ok := m.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Fields: copyFields(fields)}, nil
}

func (m *MemoryClient) Create(ctx context.Context, collection, id string, fields Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs, ok := m.collections[collection]
	if !ok {
		docs = make(map[string]Fields)
		m.collections[collection] = docs
	}
	if _, exists := docs[id]; exists {
		return ErrAlreadyExists
	}
	docs[id] = copyFields(fields)
	return nil
}

func (m *MemoryClient) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], id)
	return nil
}

func (m *MemoryClient) Scan(ctx context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]Document, 0, len(m.collections[collection]))
	for id, fields := range m.collections[collection] {
		docs = append(docs, Document{ID: id, Fields: copyFields(fields)})
	}
	// Stable order keeps scans deterministic for callers and tests.
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func copyFields(fields Fields) Fields {
	cp := make(Fields, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return cp
}
