package docstore

import (
	"context"
	"errors"
	"time"
)

// Fields is the schemaless payload of a stored document.
type Fields map[string]any

// Document is a whole stored record. The store has no notion of partial
// updates: every mutation replaces (or removes) a Document as a unit.
type Document struct {
	ID     string
	Fields Fields
}

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)

// Client is the full contract the service depends on. The backing store
// offers no conditional writes, no multi-document transactions and no
// indexed queries; callers scan collections and filter in memory, and
// every edit is a delete followed by a create.
type Client interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	// Create fails with ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, collection, id string, fields Fields) error
	// Delete is idempotent: deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id string) error
	Scan(ctx context.Context, collection string) ([]Document, error)
}

// Field accessors tolerate the type drift that comes from round-tripping
// through JSON and datastore property lists.

func String(f Fields, name string) string {
	if v, ok := f[name].(string); ok {
		return v
	}
	return ""
}

func Int(f Fields, name string) int {
	switch v := f[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func Time(f Fields, name string) time.Time {
	switch v := f[name].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
