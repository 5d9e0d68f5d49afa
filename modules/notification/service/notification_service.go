package service

import (
	"context"

	"space-booking-api/core/params"
	"space-booking-api/modules/notification/entity"
	"space-booking-api/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify records an inbox entry for a user. The admission worker calls this
// on terminal outcomes; failures are the caller's to swallow.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string, data map[string]any) error {
	return s.repo.Create(ctx, &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    entity.TypeBookingOutcome,
		Data:    entity.JSONB(data),
		IsRead:  false,
	})
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotifications, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
