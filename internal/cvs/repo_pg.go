package cvs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the stored CV row for a user.
func (r *PGRepo) Get(ctx context.Context, userID string) (CVFile, error) {
	const query = `
SELECT user_id, file_name, mime_type, size_bytes, storage_provider, storage_key, extracted_text_key, uploaded_at
FROM cv_files
WHERE user_id = $1`
	var cv CVFile
	var extractedKey sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&cv.UserID,
		&cv.FileName,
		&cv.MimeType,
		&cv.SizeBytes,
		&cv.StorageProvider,
		&cv.StorageKey,
		&extractedKey,
		&cv.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CVFile{}, ErrNotFound
		}
		return CVFile{}, err
	}
	if extractedKey.Valid {
		cv.ExtractedTextKey = extractedKey.String
	}
	return cv, nil
}

// Upsert replaces the user's CV row. A new upload clears the text sidecar.
func (r *PGRepo) Upsert(ctx context.Context, cv CVFile) error {
	const query = `
INSERT INTO cv_files (user_id, file_name, mime_type, size_bytes, storage_provider, storage_key, extracted_text_key, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6, NULL, $7)
ON CONFLICT (user_id) DO UPDATE SET
    file_name = EXCLUDED.file_name,
    mime_type = EXCLUDED.mime_type,
    size_bytes = EXCLUDED.size_bytes,
    storage_provider = EXCLUDED.storage_provider,
    storage_key = EXCLUDED.storage_key,
    extracted_text_key = NULL,
    uploaded_at = EXCLUDED.uploaded_at`

	provider := cv.StorageProvider
	if provider == "" {
		provider = "local"
	}
	_, err := r.DB.ExecContext(ctx, query,
		cv.UserID,
		cv.FileName,
		cv.MimeType,
		cv.SizeBytes,
		provider,
		cv.StorageKey,
		cv.UploadedAt,
	)
	return err
}

// SetExtractedKey records the sidecar key for the row still pointing at storageKey.
func (r *PGRepo) SetExtractedKey(ctx context.Context, userID, storageKey, extractedKey string) error {
	const query = `
UPDATE cv_files
SET extracted_text_key = $3
WHERE user_id = $1 AND storage_key = $2`
	_, err := r.DB.ExecContext(ctx, query, userID, storageKey, extractedKey)
	return err
}
