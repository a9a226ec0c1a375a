package applications

import (
	"strings"
	"time"
)

// Status is the pipeline stage of an application.
type Status string

const (
	StatusApplied     Status = "Applied"
	StatusViewed      Status = "Viewed"
	StatusFirstRound  Status = "1st Round Interviews"
	StatusSecondRound Status = "2nd Round Interviews"
	StatusFinalRound  Status = "Final Round Interviews"
	StatusRejected    Status = "Rejected"
	StatusAccepted    Status = "Accepted"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{
	StatusApplied,
	StatusViewed,
	StatusFirstRound,
	StatusSecondRound,
	StatusFinalRound,
	StatusRejected,
	StatusAccepted,
}

// ParseStatus accepts exactly one of the known status labels.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	for _, s := range Statuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// Application is a job application tracked by a user.
type Application struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	JobTitle    *string   `json:"jobTitle"`
	CompanyName *string   `json:"companyName"`
	Status      Status    `json:"status"`
	AppliedAt   time.Time `json:"appliedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FieldUpdate names the columns to change. A nil field is left alone and a
// blank one is cleared.
type FieldUpdate struct {
	CompanyName *string `json:"companyName"`
	JobTitle    *string `json:"jobTitle"`
}

// Empty reports whether no field is set.
func (u FieldUpdate) Empty() bool {
	return u.CompanyName == nil && u.JobTitle == nil
}

// nullable maps blank strings to nil.
func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
