package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const selectColumns = `id, user_id, job_title, company_name, status, applied_at, updated_at`

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, user_id, job_title, company_name, status, applied_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		app.ID,
		app.UserID,
		nullString(app.JobTitle),
		nullString(app.CompanyName),
		string(app.Status),
		app.AppliedAt,
		app.UpdatedAt,
	)
	return err
}

// UpdateStatus changes the status of an application owned by userID.
func (r *PGRepo) UpdateStatus(ctx context.Context, userID, id string, status Status, at time.Time) (Application, error) {
	query := `
UPDATE applications
SET status = $3, updated_at = $4
WHERE id = $1 AND user_id = $2
RETURNING ` + selectColumns
	return scanApplication(r.DB.QueryRowContext(ctx, query, id, userID, string(status), at))
}

// UpdateFields sets or clears company and title of an application owned by userID.
func (r *PGRepo) UpdateFields(ctx context.Context, userID, id string, upd FieldUpdate, at time.Time) (Application, error) {
	if upd.Empty() {
		return Application{}, ErrNoFields
	}
	sets := []string{"updated_at = $3"}
	args := []any{id, userID, at}
	if upd.CompanyName != nil {
		args = append(args, nullString(nullable(*upd.CompanyName)))
		sets = append(sets, fmt.Sprintf("company_name = $%d", len(args)))
	}
	if upd.JobTitle != nil {
		args = append(args, nullString(nullable(*upd.JobTitle)))
		sets = append(sets, fmt.Sprintf("job_title = $%d", len(args)))
	}

	query := `
UPDATE applications
SET ` + strings.Join(sets, ", ") + `
WHERE id = $1 AND user_id = $2
RETURNING ` + selectColumns
	return scanApplication(r.DB.QueryRowContext(ctx, query, args...))
}

// ListByUser returns the user's applications, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	query := `
SELECT ` + selectColumns + `
FROM applications
WHERE user_id = $1
ORDER BY applied_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var title, company sql.NullString
	var status string
	err := row.Scan(&app.ID, &app.UserID, &title, &company, &status, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	app.Status = Status(status)
	if title.Valid {
		app.JobTitle = &title.String
	}
	if company.Valid {
		app.CompanyName = &company.String
	}
	return app, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
