package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"jobassist-backend/internal/queue"
)

type fakeSQS struct {
	batches   [][]sqstypes.Message
	cancel    context.CancelFunc
	deleted   []string
	deleteErr error
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	if len(f.batches) == 0 {
		f.cancel()
		return nil, context.Canceled
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return &sqs.ReceiveMessageOutput{Messages: batch}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func eventMessage(t *testing.T, id string) sqstypes.Message {
	t.Helper()
	body, err := queue.EncodeEvent(queue.NewEvent(queue.TypeApplicationCreated, "app-"+id, "user-1", "Applied", time.Now()))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return sqstypes.Message{
		MessageId:     aws.String("m" + id),
		ReceiptHandle: aws.String("r" + id),
		Body:          aws.String(string(body)),
		Attributes:    map[string]string{"ApproximateReceiveCount": "1"},
	}
}

func TestSettle(t *testing.T) {
	ok := func(ctx context.Context, evt queue.Event) error { return nil }
	boom := func(ctx context.Context, evt queue.Event) error { return errors.New("boom") }
	bad := sqstypes.Message{MessageId: aws.String("m3"), ReceiptHandle: aws.String("r3"), Body: aws.String("{bad-json")}

	tests := []struct {
		name        string
		handler     queue.Handler
		msg         sqstypes.Message
		deleteErr   error
		want        outcome
		wantDeleted int
	}{
		{name: "handled", handler: ok, msg: eventMessage(t, "1"), want: consumed, wantDeleted: 1},
		{name: "handler error", handler: boom, msg: eventMessage(t, "2"), want: retried},
		{name: "malformed body", handler: ok, msg: bad, want: dropped, wantDeleted: 1},
		{name: "delete fails", handler: ok, msg: eventMessage(t, "4"), deleteErr: errors.New("denied"), want: stuck},
		{name: "no receipt", handler: ok, msg: sqstypes.Message{Body: eventMessage(t, "5").Body}, want: stuck},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeSQS{deleteErr: tc.deleteErr}
			c := &consumer{client: client, queueURL: "queue", handle: tc.handler}
			if got := c.settle(context.Background(), tc.msg); got != tc.want {
				t.Fatalf("expected outcome %d, got %d", tc.want, got)
			}
			if len(client.deleted) != tc.wantDeleted {
				t.Fatalf("expected %d deletes, got %v", tc.wantDeleted, client.deleted)
			}
		})
	}
}

func TestSettleDeletesAfterShutdownStarts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeSQS{}
	c := &consumer{
		client:   client,
		queueURL: "queue",
		handle:   func(ctx context.Context, evt queue.Event) error { return nil },
	}
	if got := c.settle(ctx, eventMessage(t, "1")); got != consumed {
		t.Fatalf("expected consumed, got %d", got)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "r1" {
		t.Fatalf("expected r1 deleted, got %v", client.deleted)
	}
}

func TestPollHandlesBatchesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &fakeSQS{
		batches: [][]sqstypes.Message{
			{eventMessage(t, "1"), eventMessage(t, "2")},
			{eventMessage(t, "3")},
		},
		cancel: cancel,
	}
	seen := make(chan string, 3)
	c := &consumer{
		client:      client,
		queueURL:    "queue",
		concurrency: 1,
		handle: func(ctx context.Context, evt queue.Event) error {
			seen <- evt.ApplicationID
			return nil
		},
	}

	c.poll(ctx)
	if !c.drain(time.Second) {
		t.Fatalf("in-flight messages did not finish")
	}
	if len(seen) != 3 || len(client.deleted) != 3 {
		t.Fatalf("expected 3 handled and deleted, got %d and %v", len(seen), client.deleted)
	}
}

func TestReceiveCount(t *testing.T) {
	if got := receiveCount(sqstypes.Message{Attributes: map[string]string{"ApproximateReceiveCount": "3"}}); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := receiveCount(sqstypes.Message{}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestEnvIntKeepsDefaultOnBadValue(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "zero")
	if got := envInt("WORKER_CONCURRENCY", 4); got != 4 {
		t.Fatalf("expected default, got %d", got)
	}
	t.Setenv("WORKER_CONCURRENCY", "8")
	if got := envInt("WORKER_CONCURRENCY", 4); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
}
