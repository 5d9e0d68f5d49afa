package service

import (
	"context"
	"fmt"
	"time"

	"space-booking-api/core/cache"
	"space-booking-api/core/errors"
	"space-booking-api/core/logger"
	"space-booking-api/core/params"
	"space-booking-api/core/utils"
	"space-booking-api/modules/space/dto"
	"space-booking-api/modules/space/entity"
	"space-booking-api/modules/space/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type SpaceServiceInterface interface {
	CreateSpace(ctx context.Context, orgID uuid.UUID, req *dto.CreateSpaceRequest) (*entity.Space, *errors.AppError)
	GetSpace(ctx context.Context, id uuid.UUID) (*entity.Space, error)
	GetSpaceBySlug(ctx context.Context, slugName string) (*entity.Space, error)
	ListSpaces(ctx context.Context, orgID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedSpaces, error)
	GetRules(ctx context.Context, spaceID uuid.UUID) (*entity.BookingRules, error)
	UpdateRules(ctx context.Context, orgID, spaceID uuid.UUID, req *dto.UpdateRulesRequest) (*entity.BookingRules, *errors.AppError)
}

type SpaceService struct {
	repo     repository.SpaceRepositoryInterface
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewSpaceService(repo repository.SpaceRepositoryInterface, c cache.Cache, cacheTTL time.Duration) *SpaceService {
	return &SpaceService{repo: repo, cache: c, cacheTTL: cacheTTL}
}

func rulesCacheKey(spaceID uuid.UUID) string {
	return "rules:" + spaceID.String()
}

func (s *SpaceService) CreateSpace(ctx context.Context, orgID uuid.UUID, req *dto.CreateSpaceRequest) (*entity.Space, *errors.AppError) {
	logger.Info("SpaceService:CreateSpace:Start", "org_id", orgID, "name", req.Name)

	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Space name is required", nil)
	}
	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Unknown timezone %q", tz), nil)
	}

	slugName, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		logger.Error("SpaceService:CreateSpace:Slug:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create space", nil)
	}

	created, err := s.repo.Create(ctx, &entity.Space{
		OrgID:    orgID,
		Name:     req.Name,
		Slug:     slugName,
		Timezone: tz,
		IsActive: true,
	})
	if err != nil {
		logger.Error("SpaceService:CreateSpace:Repo:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create space", nil)
	}

	if err := s.repo.UpsertRules(ctx, entity.DefaultRules(created.ID)); err != nil {
		logger.Error("SpaceService:CreateSpace:DefaultRules:Error", "error", err, "space_id", created.ID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create space rules", nil)
	}

	logger.Info("SpaceService:CreateSpace:Success", "space_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *SpaceService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	exists, err := s.repo.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}
	return base + "-" + utils.GenerateID(), nil
}

func (s *SpaceService) GetSpace(ctx context.Context, id uuid.UUID) (*entity.Space, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SpaceService) GetSpaceBySlug(ctx context.Context, slugName string) (*entity.Space, error) {
	return s.repo.GetBySlug(ctx, slugName)
}

func (s *SpaceService) ListSpaces(ctx context.Context, orgID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedSpaces, error) {
	return s.repo.ListByOrg(ctx, orgID, queryParams)
}

// GetRules serves the booking policy through the cache; the admission worker
// calls this on every job.
func (s *SpaceService) GetRules(ctx context.Context, spaceID uuid.UUID) (*entity.BookingRules, error) {
	var cached entity.BookingRules
	if err := s.cache.GetJSON(ctx, rulesCacheKey(spaceID), &cached); err == nil {
		return &cached, nil
	} else if err != cache.ErrMiss {
		logger.Warn("SpaceService:GetRules:Cache:Error", "error", err, "space_id", spaceID)
	}

	rules, err := s.repo.GetRules(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if rules == nil {
		return nil, nil
	}

	if err := s.cache.SetJSON(ctx, rulesCacheKey(spaceID), rules, s.cacheTTL); err != nil {
		logger.Warn("SpaceService:GetRules:CacheSet:Error", "error", err, "space_id", spaceID)
	}
	return rules, nil
}

func (s *SpaceService) UpdateRules(ctx context.Context, orgID, spaceID uuid.UUID, req *dto.UpdateRulesRequest) (*entity.BookingRules, *errors.AppError) {
	logger.Info("SpaceService:UpdateRules:Start", "space_id", spaceID)

	space, err := s.repo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load space", nil)
	}
	if space == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Space not found", nil)
	}
	if space.OrgID != orgID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Space belongs to another organization", nil)
	}

	if appErr := validateRules(req); appErr != nil {
		return nil, appErr
	}

	rules := &entity.BookingRules{
		SpaceID:             spaceID,
		SlotDurationMinutes: req.SlotDurationMinutes,
		OpenTime:            req.OpenTime,
		CloseTime:           req.CloseTime,
		MaxAdvanceDays:      req.MaxAdvanceDays,
		MaxDurationMinutes:  req.MaxDurationMinutes,
		AllowRecurring:      req.AllowRecurring,
		BufferMinutes:       req.BufferMinutes,
	}

	if err := s.repo.UpsertRules(ctx, rules); err != nil {
		logger.Error("SpaceService:UpdateRules:Repo:Error", "error", err, "space_id", spaceID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update rules", nil)
	}

	if err := s.cache.Delete(ctx, rulesCacheKey(spaceID)); err != nil {
		logger.Warn("SpaceService:UpdateRules:CacheInvalidate:Error", "error", err, "space_id", spaceID)
	}

	logger.Info("SpaceService:UpdateRules:Success", "space_id", spaceID)
	return rules, nil
}

func validateRules(req *dto.UpdateRulesRequest) *errors.AppError {
	if req.SlotDurationMinutes <= 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "slot_duration_minutes must be positive", nil)
	}
	if req.MaxDurationMinutes < req.SlotDurationMinutes {
		return errors.NewAppError(errors.ErrInvalidInput, "max_duration_minutes must be at least one slot", nil)
	}
	if req.MaxAdvanceDays < 0 || req.BufferMinutes < 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "max_advance_days and buffer_minutes must not be negative", nil)
	}

	open, err := time.Parse("15:04", req.OpenTime)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "open_time must be HH:MM", nil)
	}
	closeAt, err := time.Parse("15:04", req.CloseTime)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "close_time must be HH:MM", nil)
	}
	if !open.Before(closeAt) {
		return errors.NewAppError(errors.ErrInvalidInput, "open_time must be before close_time", nil)
	}
	return nil
}
