package repository

import (
	"context"
	"database/sql"

	"space-booking-api/core/database"
	"space-booking-api/core/logger"
	"space-booking-api/core/params"
	"space-booking-api/modules/space/entity"

	"github.com/google/uuid"
)

type SpaceRepositoryInterface interface {
	Create(ctx context.Context, space *entity.Space) (*entity.Space, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Space, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Space, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedSpaces, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	GetRules(ctx context.Context, spaceID uuid.UUID) (*entity.BookingRules, error)
	UpsertRules(ctx context.Context, rules *entity.BookingRules) error
}

type SpaceRepository struct {
	db database.IDatabase
}

func NewSpaceRepository(db database.IDatabase) *SpaceRepository {
	return &SpaceRepository{db: db}
}

func (r *SpaceRepository) Create(ctx context.Context, space *entity.Space) (*entity.Space, error) {
	query := `
		INSERT INTO spaces (org_id, name, slug, timezone, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, org_id, name, slug, timezone, is_active, created_at, updated_at
	`

	var created entity.Space
	err := r.db.GetContext(ctx, &created, query,
		space.OrgID, space.Name, space.Slug, space.Timezone, space.IsActive)
	if err != nil {
		logger.Error("SpaceRepository:Create:Error:", err)
		return nil, err
	}
	return &created, nil
}

func (r *SpaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Space, error) {
	query := `
		SELECT id, org_id, name, slug, timezone, is_active, created_at, updated_at
		FROM spaces WHERE id = $1
	`

	var space entity.Space
	err := r.db.GetContext(ctx, &space, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SpaceRepository:GetByID:Error:", err)
		return nil, err
	}
	return &space, nil
}

func (r *SpaceRepository) GetBySlug(ctx context.Context, slug string) (*entity.Space, error) {
	query := `
		SELECT id, org_id, name, slug, timezone, is_active, created_at, updated_at
		FROM spaces WHERE slug = $1
	`

	var space entity.Space
	err := r.db.GetContext(ctx, &space, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SpaceRepository:GetBySlug:Error:", err)
		return nil, err
	}
	return &space, nil
}

func (r *SpaceRepository) ListByOrg(ctx context.Context, orgID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedSpaces, error) {
	offset := (queryParams.PageNumber - 1) * queryParams.PageSize

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM spaces WHERE org_id = $1`, orgID)
	if err != nil {
		logger.Error("SpaceRepository:ListByOrg:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT id, org_id, name, slug, timezone, is_active, created_at, updated_at
		FROM spaces
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var spaces []entity.Space
	err = r.db.SelectContext(ctx, &spaces, query, orgID, queryParams.PageSize, offset)
	if err != nil {
		logger.Error("SpaceRepository:ListByOrg:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedSpaces{
		Items:      spaces,
		TotalItems: totalItems,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

func (r *SpaceRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM spaces WHERE slug = $1)`, slug)
	if err != nil {
		logger.Error("SpaceRepository:SlugExists:Error:", err)
		return false, err
	}
	return exists, nil
}

func (r *SpaceRepository) GetRules(ctx context.Context, spaceID uuid.UUID) (*entity.BookingRules, error) {
	query := `
		SELECT space_id, slot_duration_minutes, open_time, close_time,
		       max_advance_days, max_duration_minutes, allow_recurring,
		       buffer_minutes, updated_at
		FROM booking_rules WHERE space_id = $1
	`

	var rules entity.BookingRules
	err := r.db.GetContext(ctx, &rules, query, spaceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SpaceRepository:GetRules:Error:", err)
		return nil, err
	}
	return &rules, nil
}

func (r *SpaceRepository) UpsertRules(ctx context.Context, rules *entity.BookingRules) error {
	query := `
		INSERT INTO booking_rules (space_id, slot_duration_minutes, open_time, close_time,
		                           max_advance_days, max_duration_minutes, allow_recurring,
		                           buffer_minutes, updated_at)
		VALUES (:space_id, :slot_duration_minutes, :open_time, :close_time,
		        :max_advance_days, :max_duration_minutes, :allow_recurring,
		        :buffer_minutes, NOW())
		ON CONFLICT (space_id) DO UPDATE SET
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			max_advance_days = EXCLUDED.max_advance_days,
			max_duration_minutes = EXCLUDED.max_duration_minutes,
			allow_recurring = EXCLUDED.allow_recurring,
			buffer_minutes = EXCLUDED.buffer_minutes,
			updated_at = NOW()
	`

	if _, err := r.db.NamedExecContext(ctx, query, rules); err != nil {
		logger.Error("SpaceRepository:UpsertRules:Error:", err)
		return err
	}
	return nil
}
