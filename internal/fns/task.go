package fns

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Task owns one lookup round trip. The outcome is written once, before Done
// is closed, and is read-only afterwards.
type Task struct {
	ID string

	params  RequestParams
	client  *Client
	once    sync.Once
	done    chan struct{}
	outcome Outcome
}

func (c *Client) NewTask(params RequestParams) *Task {
	return &Task{
		ID:     uuid.NewString(),
		params: params,
		client: c,
		done:   make(chan struct{}),
	}
}

// Start runs the task on its own goroutine and returns it for chaining.
func (c *Client) Start(ctx context.Context, params RequestParams) *Task {
	return c.NewTask(params).Start(ctx)
}

func (t *Task) Start(ctx context.Context) *Task {
	go t.Run(ctx)
	return t
}

// Run executes the lookup on the calling goroutine. Only the first call
// performs the request; later calls wait for it and return the same outcome.
func (t *Task) Run(ctx context.Context) Outcome {
	t.once.Do(func() {
		defer close(t.done)

		logger := t.client.logger.With(
			zap.String("lookup_id", t.ID),
			zap.Int64("fn", t.params.DeviceSerial),
			zap.Int64("i", t.params.DocumentNumber),
		)
		logger.Debug("lookup started")

		start := time.Now()
		t.outcome = t.client.fetch(ctx, t.params)

		if t.outcome.Err != nil {
			logger.Warn("lookup failed",
				zap.Int("code", t.outcome.Err.Code),
				zap.String("message", t.outcome.Err.Message),
				zap.Duration("elapsed", time.Since(start)),
			)
			return
		}
		logger.Info("lookup finished",
			zap.Int("bytes", len(t.outcome.Raw)),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
	return t.outcome
}

func (t *Task) Params() RequestParams {
	return t.params
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task has completed. Safe for concurrent use.
func (t *Task) Wait() Outcome {
	<-t.done
	return t.outcome
}
