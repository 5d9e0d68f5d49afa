package service

import (
	"context"
	"time"

	"space-booking-api/core/constants"
	"space-booking-api/core/errors"
	"space-booking-api/core/lock"
	"space-booking-api/core/logger"
	"space-booking-api/core/params"
	"space-booking-api/core/utils"
	"space-booking-api/modules/booking/dto"
	"space-booking-api/modules/booking/entity"
	"space-booking-api/modules/booking/repository"

	"github.com/google/uuid"
)

type AdmissionServiceInterface interface {
	Submit(ctx context.Context, req *entity.BookingRequest, timeout time.Duration) (*dto.SubmitBookingResult, *errors.AppError)
	GetBooking(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*entity.Booking, *errors.AppError)
	ListMyBookings(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedBookings, error)
	Cancel(ctx context.Context, bookingID, userID, orgID uuid.UUID, isAdmin bool) (*entity.Booking, *errors.AppError)
}

// AdmissionService is the submitter-facing facade over the admission queue:
// it enqueues a request and waits for its terminal outcome with a deadline.
type AdmissionService struct {
	spaces    SpaceProvider
	repo      repository.BookingRepositoryInterface
	enqueuer  Enqueuer
	results   *ResultBus
	locker    lock.SpaceLocker
	lockLease time.Duration
	publisher SchedulePublisher
}

func NewAdmissionService(
	spaces SpaceProvider,
	repo repository.BookingRepositoryInterface,
	enqueuer Enqueuer,
	results *ResultBus,
	locker lock.SpaceLocker,
	lockLease time.Duration,
	publisher SchedulePublisher,
) *AdmissionService {
	return &AdmissionService{
		spaces:    spaces,
		repo:      repo,
		enqueuer:  enqueuer,
		results:   results,
		locker:    locker,
		lockLease: lockLease,
		publisher: publisher,
	}
}

// Submit enqueues the request and blocks until its terminal outcome or the
// timeout. A timeout abandons only the wait: the job keeps running and its
// effect, if any, stands.
func (s *AdmissionService) Submit(ctx context.Context, req *entity.BookingRequest, timeout time.Duration) (*dto.SubmitBookingResult, *errors.AppError) {
	if appErr := s.validateSubmission(ctx, req); appErr != nil {
		return nil, appErr
	}

	job := &entity.AdmissionJob{
		ID:      utils.GenerateID(),
		Request: *req,
	}
	logger.Info("AdmissionService:Submit:Start", "job_id", job.ID, "space_id", req.SpaceID, "user_id", req.UserID)

	// Subscribe before enqueueing so a fast worker cannot win the race.
	outcomes, cancelSub, err := s.results.Subscribe(ctx, job.ID)
	if err != nil {
		logger.Error("AdmissionService:Submit:Subscribe:Error", "job_id", job.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to submit booking", nil)
	}
	defer cancelSub()

	if err := s.enqueuer.EnqueueAdmission(ctx, job); err != nil {
		logger.Error("AdmissionService:Submit:Enqueue:Error", "job_id", job.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to submit booking", nil)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case outcome, ok := <-outcomes:
		if !ok {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Result subscription closed", nil)
		}
		return s.toResult(job.ID, outcome), nil
	case <-timer.C:
		logger.Warn("AdmissionService:Submit:TimedOut", "job_id", job.ID)
		return &dto.SubmitBookingResult{Status: dto.SubmitTimedOut, JobID: job.ID}, nil
	case <-ctx.Done():
		logger.Warn("AdmissionService:Submit:ContextDone", "job_id", job.ID, "error", ctx.Err())
		return &dto.SubmitBookingResult{Status: dto.SubmitTimedOut, JobID: job.ID}, nil
	}
}

func (s *AdmissionService) toResult(jobID string, outcome *entity.Outcome) *dto.SubmitBookingResult {
	result := &dto.SubmitBookingResult{JobID: jobID}
	switch outcome.Status {
	case entity.OutcomeAccepted:
		result.Status = dto.SubmitAccepted
		result.Booking = outcome.Booking
	default:
		result.Status = dto.SubmitRejected
		result.Reason = outcome.Reason
	}
	return result
}

func (s *AdmissionService) validateSubmission(ctx context.Context, req *entity.BookingRequest) *errors.AppError {
	if req.Notes != nil && len(*req.Notes) > constants.MaxNotesLength {
		return errors.NewAppError(errors.ErrInvalidInput, "Notes must be at most 500 characters", nil)
	}

	space, err := s.spaces.GetSpace(ctx, req.SpaceID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load space", nil)
	}
	if space == nil || !space.IsActive {
		return errors.NewAppError(errors.ErrNotFound, "Space not found", nil)
	}
	if space.OrgID != req.OrgID {
		return errors.NewAppError(errors.ErrForbidden, "Space belongs to another organization", nil)
	}
	return nil
}

func (s *AdmissionService) GetBooking(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*entity.Booking, *errors.AppError) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load booking", nil)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}
	if booking.RequesterID != userID && !isAdmin {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not your booking", nil)
	}
	return booking, nil
}

func (s *AdmissionService) ListMyBookings(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedBookings, error) {
	return s.repo.ListByRequester(ctx, userID, queryParams)
}

// Cancel transitions a booking to CANCELLED. It takes the same space lock as
// admission so a cancellation is never interleaved with a concurrent commit
// on the space.
func (s *AdmissionService) Cancel(ctx context.Context, bookingID, userID, orgID uuid.UUID, isAdmin bool) (*entity.Booking, *errors.AppError) {
	logger.Info("AdmissionService:Cancel:Start", "booking_id", bookingID, "user_id", userID)

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load booking", nil)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}
	if booking.RequesterID != userID && !isAdmin {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not your booking", nil)
	}

	space, err := s.spaces.GetSpace(ctx, booking.SpaceID)
	if err != nil || space == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load space", nil)
	}
	if space.OrgID != orgID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Booking belongs to another organization", nil)
	}

	var cancelled *entity.Booking
	err = lock.WithSpaceLock(ctx, s.locker, booking.SpaceID.String(), s.lockLease, func(ctx context.Context) error {
		var err error
		cancelled, err = s.repo.Cancel(ctx, bookingID)
		return err
	})
	if err != nil {
		logger.Error("AdmissionService:Cancel:Error", "booking_id", bookingID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to cancel booking", nil)
	}
	if cancelled == nil {
		return nil, errors.NewAppError(errors.ErrConflict, "Booking is not cancellable", nil)
	}

	s.publisher.BookingCancelled(ctx, space, cancelled)

	logger.Info("AdmissionService:Cancel:Success", "booking_id", bookingID)
	return cancelled, nil
}
