package main

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"jobassist-backend/internal/queue"
	"jobassist-backend/internal/shared/metrics"
	"jobassist-backend/internal/shared/telemetry"
)

type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type outcome int

const (
	consumed outcome = iota
	dropped
	retried
	stuck // handled or dropped, but the delete call failed
)

const deleteTimeout = 5 * time.Second

// consumer long-polls the events queue and runs handle on each message.
type consumer struct {
	client      sqsAPI
	queueURL    string
	handle      queue.Handler
	visibility  int32
	concurrency int

	wg sync.WaitGroup
}

// poll receives batches until ctx is cancelled. In-flight messages are
// bounded by concurrency.
func (c *consumer) poll(ctx context.Context) {
	slots := make(chan struct{}, max(1, c.concurrency))
	for ctx.Err() == nil {
		out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			VisibilityTimeout:   c.visibility,
			AttributeNames:      []sqstypes.QueueAttributeName{"ApproximateReceiveCount"},
		})
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			telemetry.Warn("worker.receive_failed", map[string]any{"error": err.Error()})
			continue
		}

		for _, msg := range out.Messages {
			select {
			case <-ctx.Done():
				return
			case slots <- struct{}{}:
			}
			c.wg.Add(1)
			go func(m sqstypes.Message) {
				defer c.wg.Done()
				defer func() { <-slots }()
				c.settle(ctx, m)
			}(msg)
		}
	}
}

// drain waits for in-flight messages and reports whether they all finished
// within grace.
func (c *consumer) drain(grace time.Duration) bool {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(grace):
		return false
	}
}

// settle handles one message. Malformed bodies are deleted so they do not
// cycle; handler failures are left for SQS to redeliver.
func (c *consumer) settle(ctx context.Context, msg sqstypes.Message) outcome {
	evt, err := queue.HandleBody(ctx, aws.ToString(msg.Body), c.handle)
	fields := messageFields(msg, evt)

	switch {
	case err == nil:
		if !c.remove(ctx, msg, fields) {
			return stuck
		}
		metrics.IncEventsConsumed()
		return consumed
	case errors.Is(err, queue.ErrMalformed):
		fields["error"] = err.Error()
		telemetry.Error("worker.event.malformed", fields)
		if !c.remove(ctx, msg, fields) {
			return stuck
		}
		metrics.IncEventsDropped()
		return dropped
	default:
		fields["error"] = err.Error()
		telemetry.Error("worker.event.failed", fields)
		metrics.IncEventsFailed()
		return retried
	}
}

func (c *consumer) remove(ctx context.Context, msg sqstypes.Message, fields map[string]any) bool {
	receipt := aws.ToString(msg.ReceiptHandle)
	var err error
	if receipt == "" {
		err = errors.New("missing receipt handle")
	} else {
		// A handled message is still deleted after shutdown starts.
		delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deleteTimeout)
		_, err = c.client.DeleteMessage(delCtx, &sqs.DeleteMessageInput{
			QueueUrl:      aws.String(c.queueURL),
			ReceiptHandle: aws.String(receipt),
		})
		cancel()
	}
	if err != nil {
		fields["delete_error"] = err.Error()
		telemetry.Error("worker.event.delete_failed", fields)
		return false
	}
	return true
}

// auditEvent writes the application change to the structured log.
func auditEvent(ctx context.Context, evt queue.Event) error {
	telemetry.Info("events.application", map[string]any{
		"type":           evt.Type,
		"application_id": evt.ApplicationID,
		"user_id":        evt.UserID,
		"status":         evt.Status,
		"request_id":     evt.RequestID,
		"occurred_at":    evt.OccurredAt,
	})
	return nil
}

func messageFields(msg sqstypes.Message, evt queue.Event) map[string]any {
	fields := map[string]any{
		"sqs_message_id": aws.ToString(msg.MessageId),
		"receive_count":  receiveCount(msg),
	}
	if evt.ApplicationID != "" {
		fields["application_id"] = evt.ApplicationID
	}
	if evt.RequestID != "" {
		fields["request_id"] = evt.RequestID
	}
	return fields
}

func receiveCount(msg sqstypes.Message) int {
	n, err := strconv.Atoi(msg.Attributes["ApproximateReceiveCount"])
	if err != nil {
		return 0
	}
	return n
}
