package service

import (
	"context"
	"encoding/json"

	"space-booking-api/core/logger"
	"space-booking-api/core/pubsub"
	"space-booking-api/modules/booking/entity"
)

const resultTopicPrefix = "booking:result:"

// ResultBus carries terminal job outcomes from admission workers back to
// waiting submitters, across process boundaries.
type ResultBus struct {
	bus pubsub.Bus
}

func NewResultBus(bus pubsub.Bus) *ResultBus {
	return &ResultBus{bus: bus}
}

func (r *ResultBus) Publish(ctx context.Context, outcome *entity.Outcome) error {
	return r.bus.Publish(ctx, resultTopicPrefix+outcome.JobID, outcome)
}

// Subscribe must be called before the job is enqueued, otherwise a fast
// worker can publish the outcome into nobody's channel.
func (r *ResultBus) Subscribe(ctx context.Context, jobID string) (<-chan *entity.Outcome, func(), error) {
	raw, cancel, err := r.bus.Subscribe(ctx, resultTopicPrefix+jobID)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan *entity.Outcome, 1)
	go func() {
		defer close(out)
		for msg := range raw {
			var outcome entity.Outcome
			if err := json.Unmarshal(msg, &outcome); err != nil {
				logger.Warn("ResultBus:Subscribe:Decode:Error", "job_id", jobID, "error", err)
				continue
			}
			// A redelivered job can publish the outcome more than once; the
			// waiter only needs the first, so never block on a full buffer.
			select {
			case out <- &outcome:
			default:
				logger.Debug("ResultBus:Subscribe:DuplicateOutcome", "job_id", jobID)
			}
		}
	}()

	return out, cancel, nil
}
