package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var applicationColumns = []string{"id", "user_id", "job_title", "company_name", "status", "applied_at", "updated_at"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	title := "Backend Engineer"

	mock.ExpectExec("INSERT INTO applications").
		WithArgs("app-1", "user-1", "Backend Engineer", nil, "Applied", at, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), Application{
		ID: "app-1", UserID: "user-1", JobTitle: &title, Status: StatusApplied, AppliedAt: at, UpdatedAt: at,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusScopedToOwner(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE applications").
		WithArgs("app-1", "user-2", "Rejected", at).
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	_, err := repo.UpdateStatus(context.Background(), "user-2", "app-1", StatusRejected, at)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	applied := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	at := applied.Add(time.Hour)

	rows := sqlmock.NewRows(applicationColumns).
		AddRow("app-1", "user-1", "SRE", nil, "Viewed", applied, at)
	mock.ExpectQuery("UPDATE applications").
		WithArgs("app-1", "user-1", "Viewed", at).
		WillReturnRows(rows)

	app, err := repo.UpdateStatus(context.Background(), "user-1", "app-1", StatusViewed, at)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if app.Status != StatusViewed || app.JobTitle == nil || *app.JobTitle != "SRE" || app.CompanyName != nil {
		t.Fatalf("unexpected application %+v", app)
	}
}

func TestPGRepoUpdateFieldsClearsBlank(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	blank := "  "

	rows := sqlmock.NewRows(applicationColumns).
		AddRow("app-1", "user-1", "SRE", nil, "Applied", at, at)
	mock.ExpectQuery(`SET updated_at = \$3, company_name = \$4`).
		WithArgs("app-1", "user-1", at, nil).
		WillReturnRows(rows)

	app, err := repo.UpdateFields(context.Background(), "user-1", "app-1", FieldUpdate{CompanyName: &blank}, at)
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if app.CompanyName != nil {
		t.Fatalf("expected cleared company, got %q", *app.CompanyName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateFieldsRequiresField(t *testing.T) {
	repo, _ := newMockRepo(t)
	_, err := repo.UpdateFields(context.Background(), "user-1", "app-1", FieldUpdate{}, time.Now())
	if !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	newer := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	rows := sqlmock.NewRows(applicationColumns).
		AddRow("app-2", "user-1", nil, "Acme", "Applied", newer, newer).
		AddRow("app-1", "user-1", "SRE", nil, "Viewed", older, older)
	mock.ExpectQuery("SELECT id, user_id").WithArgs("user-1").WillReturnRows(rows)

	apps, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(apps) != 2 || apps[0].ID != "app-2" || *apps[0].CompanyName != "Acme" {
		t.Fatalf("unexpected apps %+v", apps)
	}
}
