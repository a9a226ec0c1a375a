package queue

import (
	"context"
	"errors"
)

// Publisher delivers events to a backend.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Fanout publishes every event to all of its publishers.
type Fanout []Publisher

// Publish attempts every publisher and joins their errors.
func (f Fanout) Publish(ctx context.Context, evt Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(ctx context.Context, evt Event) error { return nil }

var (
	_ Publisher = Fanout(nil)
	_ Publisher = Nop{}
)
