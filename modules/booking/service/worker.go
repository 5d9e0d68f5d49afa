package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"space-booking-api/core/lock"
	"space-booking-api/core/logger"
	"space-booking-api/modules/booking/entity"
	"space-booking-api/modules/booking/repository"
	spaceEntity "space-booking-api/modules/space/entity"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskTypeAdmission is the asynq task type for booking admission jobs.
const TaskTypeAdmission = "booking:admit"

// SpaceProvider supplies the space record and its booking policy.
type SpaceProvider interface {
	GetSpace(ctx context.Context, id uuid.UUID) (*spaceEntity.Space, error)
	GetRules(ctx context.Context, spaceID uuid.UUID) (*spaceEntity.BookingRules, error)
}

// SchedulePublisher broadcasts schedule change events to live viewers.
// Best-effort; implementations must never return an error into the pipeline.
type SchedulePublisher interface {
	BookingCreated(ctx context.Context, space *spaceEntity.Space, booking *entity.Booking)
	BookingCancelled(ctx context.Context, space *spaceEntity.Space, booking *entity.Booking)
}

// InboxNotifier records a user-facing notification for a terminal outcome.
type InboxNotifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, data map[string]any) error
}

// AdmissionWorker executes one booking admission end to end: space lock,
// rule evaluation, conflict check, idempotent commit, outcome signalling.
type AdmissionWorker struct {
	spaces    SpaceProvider
	repo      repository.BookingRepositoryInterface
	checker   *ConflictChecker
	locker    lock.SpaceLocker
	lockLease time.Duration
	results   *ResultBus
	publisher SchedulePublisher
	inbox     InboxNotifier
	now       func() time.Time
}

func NewAdmissionWorker(
	spaces SpaceProvider,
	repo repository.BookingRepositoryInterface,
	locker lock.SpaceLocker,
	lockLease time.Duration,
	results *ResultBus,
	publisher SchedulePublisher,
	inbox InboxNotifier,
) *AdmissionWorker {
	return &AdmissionWorker{
		spaces:    spaces,
		repo:      repo,
		checker:   NewConflictChecker(repo),
		locker:    locker,
		lockLease: lockLease,
		results:   results,
		publisher: publisher,
		inbox:     inbox,
		now:       time.Now,
	}
}

// ProcessTask adapts Process to the asynq handler contract. Client-caused
// rejections are wrapped in asynq.SkipRetry so the queue marks them failed
// without retrying; plain errors are transient and follow the backoff policy.
func (w *AdmissionWorker) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var job entity.AdmissionJob
	if err := json.Unmarshal(task.Payload(), &job); err != nil {
		return fmt.Errorf("decode admission job: %v: %w", err, asynq.SkipRetry)
	}

	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	outcome, err := w.Process(ctx, &job, retried >= maxRetry)
	if err != nil {
		return err
	}
	if outcome.Status == entity.OutcomeRejected {
		return fmt.Errorf("booking rejected: %s: %w", outcome.Reason, asynq.SkipRetry)
	}
	return nil
}

// Process runs the admission decision for one job. A returned error is a
// transient infrastructure failure eligible for redelivery; lastAttempt
// tells Process to surface INFRA_ERROR to the submitter instead of waiting
// for a retry that will never come. A nil error always carries a terminal
// outcome, already published on the result bus.
func (w *AdmissionWorker) Process(ctx context.Context, job *entity.AdmissionJob, lastAttempt bool) (*entity.Outcome, error) {
	req := &job.Request
	logger.Info("AdmissionWorker:Process:Start", "job_id", job.ID, "space_id", req.SpaceID, "user_id", req.UserID)

	var outcome *entity.Outcome
	err := lock.WithSpaceLock(ctx, w.locker, req.SpaceID.String(), w.lockLease, func(ctx context.Context) error {
		var err error
		outcome, err = w.admit(ctx, job)
		return err
	})

	if err != nil {
		logger.Warn("AdmissionWorker:Process:Transient", "job_id", job.ID, "error", err, "last_attempt", lastAttempt)
		if lastAttempt {
			w.signalOutcome(ctx, req, &entity.Outcome{
				JobID:  job.ID,
				Status: entity.OutcomeRejected,
				Reason: entity.ReasonInfraError,
			})
		}
		return nil, err
	}

	w.signalOutcome(ctx, req, outcome)
	logger.Info("AdmissionWorker:Process:Done", "job_id", job.ID, "status", outcome.Status, "reason", outcome.Reason)
	return outcome, nil
}

// admit runs under the space lock.
func (w *AdmissionWorker) admit(ctx context.Context, job *entity.AdmissionJob) (*entity.Outcome, error) {
	req := &job.Request

	space, err := w.spaces.GetSpace(ctx, req.SpaceID)
	if err != nil {
		return nil, fmt.Errorf("load space: %w", err)
	}
	if space == nil {
		// The space was deleted while the job was queued.
		return &entity.Outcome{JobID: job.ID, Status: entity.OutcomeRejected, Reason: entity.ReasonInfraError}, nil
	}

	rules, err := w.spaces.GetRules(ctx, req.SpaceID)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	if rules == nil {
		rules = spaceEntity.DefaultRules(req.SpaceID)
	}

	normalized, ruleViolation := EvaluateRules(req, space, rules, w.now())
	if ruleViolation != nil {
		return &entity.Outcome{JobID: job.ID, Status: entity.OutcomeRejected, Reason: ruleViolation.Reason}, nil
	}

	buffer := rules.BufferMinutes
	if req.IsAdmin {
		// Override waives the buffer policy, never direct time overlap.
		buffer = 0
	}
	conflicts, err := w.checker.FindConflicts(ctx, req.SpaceID, normalized.StartTime, normalized.EndTime, buffer)
	if err != nil {
		return nil, fmt.Errorf("conflict check: %w", err)
	}
	if len(conflicts) > 0 {
		return &entity.Outcome{JobID: job.ID, Status: entity.OutcomeRejected, Reason: entity.ReasonSlotTaken}, nil
	}

	booking, err := w.repo.InsertConfirmed(ctx, &entity.Booking{
		SpaceID:        normalized.SpaceID,
		RequesterID:    normalized.UserID,
		RequesterName:  normalized.UserName,
		StartTime:      normalized.StartTime,
		EndTime:        normalized.EndTime,
		Status:         entity.BookingStatusConfirmed,
		Participants:   normalized.Participants,
		Notes:          normalized.Notes,
		SlotIndex:      normalized.SlotIndex,
		IdempotencyKey: normalized.IdempotencyKey(),
	})
	if err != nil {
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	w.publisher.BookingCreated(ctx, space, booking)

	return &entity.Outcome{JobID: job.ID, Status: entity.OutcomeAccepted, Booking: booking}, nil
}

// signalOutcome delivers the terminal result to the waiting submitter and
// their inbox. Failures here never affect the committed decision.
func (w *AdmissionWorker) signalOutcome(ctx context.Context, req *entity.BookingRequest, outcome *entity.Outcome) {
	if err := w.results.Publish(ctx, outcome); err != nil {
		logger.Warn("AdmissionWorker:SignalOutcome:ResultBus:Error", "job_id", outcome.JobID, "error", err)
	}

	title := "Booking confirmed"
	message := "Your booking request was accepted."
	data := map[string]any{"job_id": outcome.JobID, "space_id": req.SpaceID.String()}
	if outcome.Status == entity.OutcomeRejected {
		title = "Booking rejected"
		message = fmt.Sprintf("Your booking request was rejected (%s).", outcome.Reason)
		data["reason"] = string(outcome.Reason)
	} else if outcome.Booking != nil {
		data["booking_id"] = outcome.Booking.ID.String()
	}

	if err := w.inbox.Notify(ctx, req.UserID, title, message, data); err != nil {
		logger.Warn("AdmissionWorker:SignalOutcome:Inbox:Error", "job_id", outcome.JobID, "error", err)
	}
}
