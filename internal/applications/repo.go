package applications

import (
	"context"
	"time"
)

// Repo persists applications. Every mutation is scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, app Application) error
	UpdateStatus(ctx context.Context, userID, id string, status Status, at time.Time) (Application, error)
	UpdateFields(ctx context.Context, userID, id string, upd FieldUpdate, at time.Time) (Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
}
