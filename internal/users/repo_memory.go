package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo backs dev runs without DATABASE_URL and the tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]User
	now  func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]User),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// write runs fn under the write lock with the stored row, if any. fn returns
// the row to store, or ok=false to leave the map untouched.
func (r *MemoryRepo) write(ctx context.Context, id string, fn func(cur User, found bool) (User, bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, found := r.byID[id]
	next, ok, err := fn(cur, found)
	if err != nil || !ok {
		return err
	}
	next.UpdatedAt = r.now()
	if !found {
		next.CreatedAt = next.UpdatedAt
	}
	r.byID[id] = next
	return nil
}

// Upsert refreshes profile fields. The onboarding flag and a chosen username
// survive.
func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	return r.write(ctx, user.ID, func(cur User, found bool) (User, bool, error) {
		if found {
			user.CreatedAt = cur.CreatedAt
			user.HasCompletedOnboarding = cur.HasCompletedOnboarding
			if cur.Username != "" {
				user.Username = cur.Username
			}
		}
		return user, true, nil
	})
}

func (r *MemoryRepo) EnsureExists(ctx context.Context, user User) error {
	return r.write(ctx, user.ID, func(_ User, found bool) (User, bool, error) {
		return user, !found, nil
	})
}

func (r *MemoryRepo) SetOnboarding(ctx context.Context, userID string, completed bool) error {
	return r.write(ctx, userID, func(cur User, found bool) (User, bool, error) {
		if !found {
			return User{}, false, ErrNotFound
		}
		cur.HasCompletedOnboarding = completed
		return cur, true, nil
	})
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	u, ok := r.byID[userID]
	r.mu.RUnlock()
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}
