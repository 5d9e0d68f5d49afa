// Package queue owns the asynq client and server handles. Both are
// constructed explicitly and passed down; no package-level connection state.
package queue

import (
	"context"
	"time"

	"space-booking-api/core/config"
	"space-booking-api/core/constants"
	"space-booking-api/core/logger"

	"github.com/hibiken/asynq"
)

type Queue struct {
	client *asynq.Client
	server *asynq.Server
	mux    *asynq.ServeMux
}

// RetryDelay returns the backoff schedule for transient failures: base for
// the first retry, doubling each retry after that (1s, 2s, 4s, ...).
func RetryDelay(base time.Duration) asynq.RetryDelayFunc {
	return func(n int, err error, task *asynq.Task) time.Duration {
		if n > 16 {
			n = 16
		}
		return base << n
	}
}

func New(redisCfg config.RedisConfig, queueCfg config.QueueConfig) *Queue {
	opt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: queueCfg.Concurrency,
		Queues: map[string]int{
			constants.QueueAdmission: 1,
		},
		RetryDelayFunc: RetryDelay(queueCfg.BackoffBase),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Warn("Queue:Task:Error", "type", task.Type(), "error", err)
		}),
	})

	return &Queue{
		client: asynq.NewClient(opt),
		server: server,
		mux:    asynq.NewServeMux(),
	}
}

// Handle registers a task handler on the queue's mux. Must be called before
// Start.
func (q *Queue) Handle(taskType string, handler asynq.Handler) {
	q.mux.Handle(taskType, handler)
}

func (q *Queue) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return q.client.EnqueueContext(ctx, task, opts...)
}

// Start launches the worker pool in the background.
func (q *Queue) Start() error {
	logger.Info("Queue:Start")
	return q.server.Start(q.mux)
}

// Shutdown drains in-flight tasks and closes the client.
func (q *Queue) Shutdown() {
	logger.Info("Queue:Shutdown")
	q.server.Shutdown()
	if err := q.client.Close(); err != nil {
		logger.Warn("Queue:Shutdown:ClientClose:Error", "error", err)
	}
}
