package cvs

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]CVFile // userID -> cv
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]CVFile)}
}

func (r *MemoryRepo) Get(ctx context.Context, userID string) (CVFile, error) {
	if err := ctx.Err(); err != nil {
		return CVFile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cv, ok := r.data[userID]
	if !ok {
		return CVFile{}, ErrNotFound
	}
	return cv, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, cv CVFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[cv.UserID] = cv
	return nil
}

// SetExtractedKey records the text sidecar, ignoring rows that were
// replaced since the extraction started.
func (r *MemoryRepo) SetExtractedKey(ctx context.Context, userID, storageKey, extractedKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cv, ok := r.data[userID]
	if !ok {
		return ErrNotFound
	}
	if cv.StorageKey == storageKey {
		cv.ExtractedTextKey = extractedKey
		r.data[userID] = cv
	}
	return nil
}
