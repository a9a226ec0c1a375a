package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatusWithoutChecks(t *testing.T) {
	report := NewService().Status(context.Background())
	if !report.OK || report.Checks != nil {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestStatusReportsFailures(t *testing.T) {
	svc := NewService()
	svc.Register("db", func(ctx context.Context) error { return nil })
	svc.Register("redis", func(ctx context.Context) error { return errors.New("connection refused") })
	svc.Register("ignored", nil)

	report := svc.Status(context.Background())
	if report.OK {
		t.Fatalf("expected failing report")
	}
	if report.Checks["db"] != "ok" || report.Checks["redis"] != "connection refused" {
		t.Fatalf("unexpected checks %+v", report.Checks)
	}
	if _, ok := report.Checks["ignored"]; ok {
		t.Fatalf("nil check must not be registered")
	}
}

func TestStatusRunsChecksConcurrently(t *testing.T) {
	svc := NewService()
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	for _, name := range []string{"db", "redis"} {
		svc.Register(name, func(ctx context.Context) error {
			started <- struct{}{}
			<-release
			return nil
		})
	}
	go func() {
		<-started
		<-started
		close(release)
	}()

	if report := svc.Status(context.Background()); !report.OK || len(report.Checks) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestStatusTimesOutSlowCheck(t *testing.T) {
	svc := NewService()
	svc.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	report := svc.Status(context.Background())
	if report.OK || report.Checks["slow"] != context.DeadlineExceeded.Error() {
		t.Fatalf("unexpected report %+v", report)
	}
}
