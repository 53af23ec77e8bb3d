package batch

import (
	"context"
	"fmt"

	"receipt_check/internal/fns"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result pairs a batch line with its lookup outcome. Outcome is zero when
// the line itself was malformed.
type Result struct {
	Line    Line
	Outcome fns.Outcome
}

type Runner struct {
	client      *fns.Client
	concurrency int
	logger      *zap.Logger
}

// NewRunner returns a runner that keeps at most concurrency lookups in
// flight; zero or less means one goroutine per line.
func NewRunner(client *fns.Client, concurrency int, logger *zap.Logger) *Runner {
	return &Runner{
		client:      client,
		concurrency: concurrency,
		logger:      logger.Named("batch"),
	}
}

// Run looks up every well-formed line concurrently and hands results to
// emit in input order. A failed lookup never stops the batch; an emit
// error does.
func (r *Runner) Run(ctx context.Context, lines []Line, emit func(Result) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make([]*fns.Task, len(lines))
	for i, line := range lines {
		if line.Err == nil {
			tasks[i] = r.client.NewTask(line.Params)
		}
	}

	limit := r.concurrency
	if limit <= 0 {
		limit = -1
	}

	var g errgroup.Group
	g.SetLimit(limit)

	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for _, task := range tasks {
			if task == nil {
				continue
			}
			g.Go(func() error {
				task.Run(ctx)
				return nil
			})
		}
	}()

	var (
		emitErr           error
		malformed, failed int
	)
	for i, line := range lines {
		result := Result{Line: line}
		switch {
		case line.Err != nil:
			malformed++
			r.logger.Warn("skipping malformed line", zap.Int("line", line.Number), zap.Error(line.Err))
		default:
			result.Outcome = tasks[i].Wait()
			if !result.Outcome.OK() {
				failed++
			}
		}

		if err := emit(result); err != nil {
			emitErr = fmt.Errorf("emit result for line %d: %w", line.Number, err)
			cancel()
			break
		}
	}

	<-launched
	_ = g.Wait()

	r.logger.Info("batch finished",
		zap.Int("lines", len(lines)),
		zap.Int("malformed", malformed),
		zap.Int("failed", failed),
	)
	return emitErr
}
