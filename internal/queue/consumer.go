package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed marks payloads that will never decode into a usable event.
var ErrMalformed = errors.New("malformed event")

// Handler processes one decoded event.
type Handler func(ctx context.Context, evt Event) error

// HandleBody decodes a raw message body and passes it to h. Decode and
// validation failures wrap ErrMalformed.
func HandleBody(ctx context.Context, body string, h Handler) (Event, error) {
	if strings.TrimSpace(body) == "" {
		return Event{}, fmt.Errorf("%w: empty body", ErrMalformed)
	}
	evt, err := DecodeEvent([]byte(body))
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if evt.Type == "" || evt.ApplicationID == "" {
		return evt, fmt.Errorf("%w: type and applicationId are required", ErrMalformed)
	}
	if err := h(ctx, evt); err != nil {
		return evt, err
	}
	return evt, nil
}
