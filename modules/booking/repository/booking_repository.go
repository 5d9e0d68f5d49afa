package repository

import (
	"context"
	"database/sql"
	"time"

	"space-booking-api/core/database"
	"space-booking-api/core/logger"
	"space-booking-api/core/params"
	"space-booking-api/modules/booking/entity"

	"github.com/google/uuid"
)

type BookingRepositoryInterface interface {
	// FindConfirmedOverlapping returns CONFIRMED bookings on the space whose
	// [start_time, end_time) intersects [start, end). Buffer expansion is
	// the caller's concern.
	FindConfirmedOverlapping(ctx context.Context, spaceID uuid.UUID, start, end time.Time) ([]entity.Booking, error)

	// InsertConfirmed commits a CONFIRMED booking under its idempotency key.
	// A duplicate key returns the already-committed row instead of creating
	// a second one. Cancelled rows do not count: cancelling releases the key
	// so the same user can re-book the identical interval.
	InsertConfirmed(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)

	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedBookings, error)
	ListConfirmedForDay(ctx context.Context, spaceID uuid.UUID, dayStart, dayEnd time.Time) ([]entity.Booking, error)

	// Cancel transitions a CONFIRMED booking to CANCELLED and returns the
	// updated row, or nil when the booking was not cancellable.
	Cancel(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
}

type BookingRepository struct {
	db database.IDatabase
}

func NewBookingRepository(db database.IDatabase) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, space_id, requester_id, requester_name, start_time, end_time,
	       status, participants, notes, slot_index, idempotency_key, created_at, updated_at`

func (r *BookingRepository) FindConfirmedOverlapping(ctx context.Context, spaceID uuid.UUID, start, end time.Time) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE space_id = $1
		  AND status = 'CONFIRMED'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`

	var bookings []entity.Booking
	err := r.db.SelectContext(ctx, &bookings, query, spaceID, start, end)
	if err != nil {
		logger.Error("BookingRepository:FindConfirmedOverlapping:Error:", err)
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) InsertConfirmed(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	query := `
		INSERT INTO bookings (space_id, requester_id, requester_name, start_time, end_time,
		                      status, participants, notes, slot_index, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, 'CONFIRMED', $6, $7, $8, $9)
		ON CONFLICT (idempotency_key) WHERE status <> 'CANCELLED' DO NOTHING
		RETURNING ` + bookingColumns + `
	`

	var created entity.Booking
	err := r.db.GetContext(ctx, &created, query,
		booking.SpaceID, booking.RequesterID, booking.RequesterName,
		booking.StartTime, booking.EndTime,
		booking.Participants, booking.Notes, booking.SlotIndex, booking.IdempotencyKey)
	if err == nil {
		return &created, nil
	}
	if err != sql.ErrNoRows {
		logger.Error("BookingRepository:InsertConfirmed:Error:", err)
		return nil, err
	}

	// Duplicate delivery of the same job: hand back the earlier commit.
	existing, err := r.getByIdempotencyKey(ctx, booking.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	logger.Info("BookingRepository:InsertConfirmed:Duplicate", "idempotency_key", booking.IdempotencyKey, "booking_id", existing.ID)
	return existing, nil
}

func (r *BookingRepository) getByIdempotencyKey(ctx context.Context, key string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE idempotency_key = $1 AND status <> 'CANCELLED'`

	var booking entity.Booking
	if err := r.db.GetContext(ctx, &booking, query, key); err != nil {
		logger.Error("BookingRepository:GetByIdempotencyKey:Error:", err)
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByID:Error:", err)
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedBookings, error) {
	offset := (queryParams.PageNumber - 1) * queryParams.PageSize

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM bookings WHERE requester_id = $1`, requesterID)
	if err != nil {
		logger.Error("BookingRepository:ListByRequester:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE requester_id = $1
		ORDER BY start_time DESC
		LIMIT $2 OFFSET $3
	`

	var bookings []entity.Booking
	err = r.db.SelectContext(ctx, &bookings, query, requesterID, queryParams.PageSize, offset)
	if err != nil {
		logger.Error("BookingRepository:ListByRequester:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedBookings{
		Items:      bookings,
		TotalItems: totalItems,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

func (r *BookingRepository) ListConfirmedForDay(ctx context.Context, spaceID uuid.UUID, dayStart, dayEnd time.Time) ([]entity.Booking, error) {
	return r.FindConfirmedOverlapping(ctx, spaceID, dayStart, dayEnd)
}

func (r *BookingRepository) Cancel(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'CANCELLED', updated_at = NOW()
		WHERE id = $1 AND status = 'CONFIRMED'
		RETURNING ` + bookingColumns + `
	`

	var cancelled entity.Booking
	err := r.db.GetContext(ctx, &cancelled, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:Cancel:Error:", err)
		return nil, err
	}
	return &cancelled, nil
}
