// Package storage keeps processed documents in memory so later requests can refer to them by id.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/docqa/backend/internal/models"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrNotFound is returned for unknown or expired document ids.
var ErrNotFound = errors.New("document not found")

const (
	DefaultCapacity = 256
	DefaultTTL      = 60 * time.Minute
)

// Store defines the interface for document storage.
type Store interface {
	Save(doc models.Document) (*models.Document, error)
	Get(id string) (*models.Document, error)
	Delete(id string) error
	Len() int
}

// MemoryStore implements Store with a size-bounded LRU whose entries expire.
// Nothing is written to disk.
type MemoryStore struct {
	docs *expirable.LRU[string, models.Document]
}

// NewMemoryStore creates a store holding at most capacity documents for ttl each.
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		docs: expirable.NewLRU[string, models.Document](capacity, nil, ttl),
	}
}

// Save stores a copy of doc under a freshly generated id and returns it.
// Any id already set on doc is ignored.
func (s *MemoryStore) Save(doc models.Document) (*models.Document, error) {
	doc.ID = uuid.New().String()
	s.docs.Add(doc.ID, doc)
	return &doc, nil
}

// Get retrieves a document by id.
func (s *MemoryStore) Get(id string) (*models.Document, error) {
	doc, ok := s.docs.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &doc, nil
}

// Delete forgets a document.
func (s *MemoryStore) Delete(id string) error {
	if !s.docs.Remove(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Len returns the number of live documents.
func (s *MemoryStore) Len() int {
	return s.docs.Len()
}
