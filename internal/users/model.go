package users

import (
	"strings"
	"time"
)

type User struct {
	ID                     string    `json:"id"`
	Email                  string    `json:"email"`
	Username               string    `json:"username"`
	FullName               string    `json:"fullName"`
	PictureURL             string    `json:"pictureUrl"`
	HasCompletedOnboarding bool      `json:"hasCompletedOnboarding"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// DisplayName picks the username, then the full name, then the email local part.
func DisplayName(username, fullName, email string) string {
	if v := strings.TrimSpace(username); v != "" {
		return v
	}
	if v := strings.TrimSpace(fullName); v != "" {
		return v
	}
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return local
}
