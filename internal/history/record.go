package history

import (
	"context"
	"errors"
	"time"
)

// ErrPersistence wraps any failure to write a record to the store.
var ErrPersistence = errors.New("history record could not be persisted")

// Record is one entry of the city lookup log. Records are append-only.
// Ciudad is nil when the caller sent no city at all; such records are
// stored without the field.
type Record struct {
	ID        string    `json:"id"`
	Ciudad    *string   `json:"ciudad,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the contract every history backend (memory, SQL, MongoDB) satisfies.
// Save assigns the record ID.
type Store interface {
	Save(ctx context.Context, rec Record) (Record, error)
	Close(ctx context.Context) error
}
