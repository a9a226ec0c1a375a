package users

import (
	"context"
	"errors"
	"strings"
)

// Identity is what the session token says about the caller.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth persists the identity returned by the OAuth provider.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return errors.New("user id and email are required")
	}
	if user.Username == "" {
		user.Username = DisplayName("", user.FullName, user.Email)
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// Info returns the stored profile, or one built from the token when the user
// has no row yet.
func (s *Service) Info(ctx context.Context, id Identity) (User, error) {
	user, err := s.GetByID(ctx, id.UserID)
	if errors.Is(err, ErrNotFound) {
		return User{
			ID:       id.UserID,
			Email:    id.Email,
			FullName: id.Name,
			Username: DisplayName("", id.Name, id.Email),
		}, nil
	}
	if err != nil {
		return User{}, err
	}
	user.Username = DisplayName(user.Username, user.FullName, user.Email)
	return user, nil
}

// OnboardingStatus reports the flag; unknown users have not onboarded.
func (s *Service) OnboardingStatus(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.HasCompletedOnboarding, nil
}

// CompleteOnboarding sets the flag, creating the row from the token first.
func (s *Service) CompleteOnboarding(ctx context.Context, id Identity) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(id.UserID) == "" {
		return errors.New("user id is required")
	}
	err := s.Repo.EnsureExists(ctx, User{
		ID:       id.UserID,
		Email:    id.Email,
		FullName: id.Name,
		Username: DisplayName("", id.Name, id.Email),
	})
	if err != nil {
		return err
	}
	return s.Repo.SetOnboarding(ctx, id.UserID, true)
}
