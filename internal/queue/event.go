package queue

import (
	"encoding/json"
	"time"
)

// Event types published for application changes.
const (
	TypeApplicationCreated       = "application.created"
	TypeApplicationStatusChanged = "application.status_changed"
	TypeApplicationUpdated       = "application.updated"
)

const eventVersion = 1

// Event is the payload sent to downstream consumers.
type Event struct {
	Type          string `json:"type"`
	ApplicationID string `json:"applicationId"`
	UserID        string `json:"userId"`
	Status        string `json:"status,omitempty"`
	RequestID     string `json:"requestId,omitempty"`
	OccurredAt    string `json:"occurredAt"`
	Version       int    `json:"version"`
}

// NewEvent stamps an event with its time and schema version.
func NewEvent(eventType, applicationID, userID, status string, at time.Time) Event {
	return Event{
		Type:          eventType,
		ApplicationID: applicationID,
		UserID:        userID,
		Status:        status,
		OccurredAt:    at.UTC().Format(time.RFC3339),
		Version:       eventVersion,
	}
}

// EncodeEvent returns the JSON representation of an event.
func EncodeEvent(evt Event) ([]byte, error) {
	return json.Marshal(evt)
}

// DecodeEvent parses a JSON payload into an Event.
func DecodeEvent(payload []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}
