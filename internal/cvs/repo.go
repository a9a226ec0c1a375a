package cvs

import "context"

// Repo persists the CV metadata row, one per user.
type Repo interface {
	Get(ctx context.Context, userID string) (CVFile, error)
	Upsert(ctx context.Context, cv CVFile) error
	SetExtractedKey(ctx context.Context, userID, storageKey, extractedKey string) error
}
