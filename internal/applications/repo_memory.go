package applications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Application // id -> application
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Application)}
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[app.ID] = app
	return nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, userID, id string, status Status, at time.Time) (Application, error) {
	return r.mutate(ctx, userID, id, func(app *Application) {
		app.Status = status
		app.UpdatedAt = at
	})
}

func (r *MemoryRepo) UpdateFields(ctx context.Context, userID, id string, upd FieldUpdate, at time.Time) (Application, error) {
	return r.mutate(ctx, userID, id, func(app *Application) {
		if upd.CompanyName != nil {
			app.CompanyName = nullable(*upd.CompanyName)
		}
		if upd.JobTitle != nil {
			app.JobTitle = nullable(*upd.JobTitle)
		}
		app.UpdatedAt = at
	})
}

func (r *MemoryRepo) mutate(ctx context.Context, userID, id string, fn func(*Application)) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.data[id]
	if !ok || app.UserID != userID {
		return Application{}, ErrNotFound
	}
	fn(&app)
	r.data[id] = app
	return app, nil
}

// ListByUser returns the user's applications, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Application, 0)
	for _, app := range r.data {
		if app.UserID == userID {
			out = append(out, app)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].AppliedAt.After(out[j].AppliedAt)
	})
	return out, nil
}
