package history

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Recorder persists one record per reported lookup. It holds no state of
// its own beyond the shared store, so it is safe for concurrent handlers.
type Recorder struct {
	store Store
	now   func() time.Time
}

// NewRecorder creates a Recorder backed by store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Record appends a record for ciudad. No deduplication and no retry.
func (r *Recorder) Record(ctx context.Context, ciudad *string) (Record, error) {
	rec := Record{
		Ciudad:    ciudad,
		CreatedAt: r.now(),
	}

	saved, err := r.store.Save(ctx, rec)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if saved.Ciudad != nil {
		log.Printf("DEBUG: history record %s saved for %q", saved.ID, *saved.Ciudad)
	} else {
		log.Printf("DEBUG: history record %s saved without city", saved.ID)
	}
	return saved, nil
}
