package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/clima/internal/history"
)

// ErrClosed is returned by Save once the store has been closed.
var ErrClosed = errors.New("history store is closed")

// MemoryStore is a concurrency-safe in-memory history store. Its contents
// are lost on restart; it backs tests and local runs without a database.
type MemoryStore struct {
	mu sync.RWMutex

	records []history.Record
	closed  bool
}

var _ history.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends rec with a fresh UUID.
func (s *MemoryStore) Save(ctx context.Context, rec history.Record) (history.Record, error) {
	if err := ctx.Err(); err != nil {
		return history.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.Record{}, ErrClosed
	}

	rec.ID = uuid.NewString()
	if rec.Ciudad != nil {
		c := *rec.Ciudad
		rec.Ciudad = &c
	}
	s.records = append(s.records, rec)
	return rec, nil
}

// Records returns a copy of all records in insertion order.
func (s *MemoryStore) Records() []history.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]history.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close marks the store closed. Records stay readable.
func (s *MemoryStore) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
