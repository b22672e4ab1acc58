// Package persist provides durable key-value snapshot storage for the
// session stores. Each store writes its full document after every mutation;
// documents are restored verbatim on first access. Writes are best-effort
// and last-writer-wins across concurrent sessions of the same ID.
package persist

import (
	"context"
	"fmt"
	"sync"
)

// Store persists JSON-serializable snapshot documents by key.
type Store interface {
	// Save marshals doc and writes it under key, replacing any prior value.
	Save(ctx context.Context, key string, doc any) error

	// Load reads the document under key into doc. Returns false when the
	// key has never been written.
	Load(ctx context.Context, key string, doc any) (bool, error)

	// Delete removes the document under key. Absent keys are a no-op.
	Delete(ctx context.Context, key string) error
}

// Key builds the storage key for one store document of one session.
// Format: storefront:{kind}:{session}.
func Key(kind, sessionID string) string {
	return fmt.Sprintf("storefront:%s:%s", kind, sessionID)
}

// Memory is an in-process Store used in development mode and tests.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Save(ctx context.Context, key string, doc any) error {
	data, err := marshalDoc(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[key] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) Load(ctx context.Context, key string, doc any) (bool, error) {
	m.mu.RLock()
	data, ok := m.docs[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, unmarshalDoc(data, doc)
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.docs, key)
	m.mu.Unlock()
	return nil
}
