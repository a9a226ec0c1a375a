package users

import (
	"context"
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		username, fullName, email, want string
	}{
		{"jdoe", "Jane Doe", "jane@example.com", "jdoe"},
		{"", "Jane Doe", "jane@example.com", "Jane Doe"},
		{"", " ", "jane@example.com", "jane"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.username, tt.fullName, tt.email); got != tt.want {
			t.Fatalf("DisplayName(%q,%q,%q) = %q, want %q", tt.username, tt.fullName, tt.email, got, tt.want)
		}
	}
}

func TestOnboardingLifecycle(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	id := Identity{UserID: "google:1", Email: "jane@example.com"}

	done, err := svc.OnboardingStatus(ctx, id.UserID)
	if err != nil || done {
		t.Fatalf("unknown user should not be onboarded, got %v %v", done, err)
	}

	if err := svc.CompleteOnboarding(ctx, id); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	done, err = svc.OnboardingStatus(ctx, id.UserID)
	if err != nil || !done {
		t.Fatalf("expected onboarded, got %v %v", done, err)
	}

	user, err := svc.GetByID(ctx, id.UserID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Username != "jane" || user.Email != "jane@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestUpsertKeepsOnboardingFlag(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if err := svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: "jane@example.com", FullName: "Jane Doe"}); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}
	if err := svc.CompleteOnboarding(ctx, Identity{UserID: "google:1"}); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	if err := svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: "jane@new.example.com", FullName: "Jane Doe"}); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}

	user, err := svc.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !user.HasCompletedOnboarding || user.Email != "jane@new.example.com" || user.Username != "Jane Doe" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestUpsertFromAuthValidates(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "google:1"}); err == nil {
		t.Fatalf("expected error for missing email")
	}
}

func TestInfoFallsBackToClaims(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	user, err := svc.Info(context.Background(), Identity{UserID: "google:2", Email: "bob@example.com", Name: "Bob"})
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if user.ID != "google:2" || user.Username != "Bob" {
		t.Fatalf("unexpected user %+v", user)
	}
}
