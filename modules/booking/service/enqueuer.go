package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"space-booking-api/core/constants"
	"space-booking-api/core/queue"
	"space-booking-api/modules/booking/entity"

	"github.com/hibiken/asynq"
)

// Enqueuer hands an admission job to the work queue. The queue must deliver
// at least once; the commit path is idempotent against redelivery.
type Enqueuer interface {
	EnqueueAdmission(ctx context.Context, job *entity.AdmissionJob) error
}

// AsynqEnqueuer enqueues admission jobs on the redis-backed queue with the
// retry, backoff and retention policy of the pipeline.
type AsynqEnqueuer struct {
	queue     *queue.Queue
	retention time.Duration
}

func NewAsynqEnqueuer(q *queue.Queue, retention time.Duration) *AsynqEnqueuer {
	return &AsynqEnqueuer{queue: q, retention: retention}
}

func (e *AsynqEnqueuer) EnqueueAdmission(ctx context.Context, job *entity.AdmissionJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode admission job: %w", err)
	}

	_, err = e.queue.Enqueue(ctx, asynq.NewTask(TaskTypeAdmission, payload),
		asynq.Queue(constants.QueueAdmission),
		asynq.TaskID(job.ID),
		asynq.MaxRetry(constants.AdmissionMaxRetry),
		asynq.Retention(e.retention),
	)
	if err != nil {
		return fmt.Errorf("enqueue admission job: %w", err)
	}
	return nil
}
