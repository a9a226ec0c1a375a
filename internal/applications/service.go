package applications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobassist-backend/internal/llm"
	"jobassist-backend/internal/queue"
	"jobassist-backend/internal/shared/metrics"
	"jobassist-backend/internal/shared/server/middleware"
	"jobassist-backend/internal/shared/telemetry"
)

// Service contains business logic for applications.
type Service struct {
	Repo   Repo
	LLM    llm.Client
	Events queue.Publisher
	Now    func() time.Time
}

// NewService constructs a Service. events may be nil.
func NewService(repo Repo, client llm.Client, events queue.Publisher) *Service {
	if events == nil {
		events = queue.Nop{}
	}
	return &Service{Repo: repo, LLM: client, Events: events, Now: time.Now}
}

// Create infers company and title from the job description and records a
// new application with status Applied.
func (s *Service) Create(ctx context.Context, userID, jobDescription string) (Application, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if userID == "" || jobDescription == "" {
		return Application{}, ErrInvalidInput
	}

	raw, err := s.LLM.Generate(ctx, llm.ApplicationDetailsPrompt(jobDescription))
	if err != nil {
		return Application{}, fmt.Errorf("extract application details: %w", err)
	}
	details, ok := parseDetails(raw)
	if !ok {
		telemetry.Warn("applications.details_unparseable", map[string]any{
			"user_id":       userID,
			"response_size": len(raw),
		})
	}
	details, usedHeuristic := resolveDetails(details, jobDescription)
	if usedHeuristic {
		metrics.IncDetailsHeuristic()
	}

	now := s.now()
	app := Application{
		ID:          uuid.NewString(),
		UserID:      userID,
		JobTitle:    nullable(details.JobTitle),
		CompanyName: nullable(details.CompanyName),
		Status:      StatusApplied,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, fmt.Errorf("create application: %w", err)
	}
	metrics.IncApplicationsCreated()
	s.publish(ctx, queue.TypeApplicationCreated, app)
	return app, nil
}

// UpdateStatus moves an application owned by userID to a new status.
func (s *Service) UpdateStatus(ctx context.Context, userID, id, rawStatus string) (Application, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return Application{}, err
	}
	id, err = s.checkIDs(userID, id)
	if err != nil {
		return Application{}, err
	}
	app, err := s.Repo.UpdateStatus(ctx, userID, id, status, s.now())
	if err != nil {
		return Application{}, err
	}
	s.publish(ctx, queue.TypeApplicationStatusChanged, app)
	return app, nil
}

// Update edits company and title of an application owned by userID.
func (s *Service) Update(ctx context.Context, userID, id string, upd FieldUpdate) (Application, error) {
	id, err := s.checkIDs(userID, id)
	if err != nil {
		return Application{}, err
	}
	if upd.Empty() {
		return Application{}, ErrNoFields
	}
	app, err := s.Repo.UpdateFields(ctx, userID, id, upd, s.now())
	if err != nil {
		return Application{}, err
	}
	s.publish(ctx, queue.TypeApplicationUpdated, app)
	return app, nil
}

// List returns the user's applications, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Application, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Dashboard summarizes the user's applications for the current month.
func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	apps, err := s.List(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(apps, s.now()), nil
}

// checkIDs rejects blank users and ids that cannot exist.
func (s *Service) checkIDs(userID, id string) (string, error) {
	id = strings.TrimSpace(id)
	if userID == "" || id == "" {
		return "", ErrInvalidInput
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrNotFound
	}
	return id, nil
}

func (s *Service) publish(ctx context.Context, eventType string, app Application) {
	evt := queue.NewEvent(eventType, app.ID, app.UserID, string(app.Status), s.now())
	evt.RequestID = middleware.RequestIDFrom(ctx)
	if err := s.Events.Publish(ctx, evt); err != nil {
		telemetry.Error("applications.event_publish_failed", map[string]any{
			"type":           eventType,
			"application_id": app.ID,
			"error":          err,
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
