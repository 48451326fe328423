package storage

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// MemoryDocumentStore keeps documents in process memory. Its links use the memory:// scheme
// and cannot be fetched over HTTP.
type MemoryDocumentStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	expiry  time.Duration
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryDocumentStore creates an empty store whose links expire after expiry
func NewMemoryDocumentStore(expiry time.Duration) *MemoryDocumentStore {
	if expiry <= 0 {
		expiry = DefaultPresignExpiration
	}
	return &MemoryDocumentStore{objects: make(map[string]memoryObject), expiry: expiry}
}

// Put stores a copy of data under key
func (m *MemoryDocumentStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// DownloadURL returns a memory:// link to key
func (m *MemoryDocumentStore) DownloadURL(_ context.Context, key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	expiresAt := time.Now().Add(m.expiry)
	link := url.URL{Scheme: "memory", Host: "documents", Path: "/" + key}
	q := link.Query()
	q.Set("expires", expiresAt.UTC().Format(time.RFC3339))
	link.RawQuery = q.Encode()
	return link.String(), expiresAt, nil
}

// Delete forgets key
func (m *MemoryDocumentStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Exists reports whether key is stored
func (m *MemoryDocumentStore) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

// Get returns the stored bytes and content type of key
func (m *MemoryDocumentStore) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), obj.data...), obj.contentType, true
}
