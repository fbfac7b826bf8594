package notificationapp

import (
	"context"

	"board/internal/core/apperror"
	"board/internal/core/notification"
	notificationPort "board/internal/ports/notification"
	userPort "board/internal/ports/user"

	"go.uber.org/zap"
)

const maxPageSize = 100

const dateTimeLayout = "2006-01-02 15:04:05"

// NotificationService reads a member's inbox.
type NotificationService struct {
	UserRepository         userPort.UserRepository
	NotificationRepository notificationPort.NotificationRepository
	Inbox                  notificationPort.Inbox
	Logger                 *zap.Logger
}

func NewNotificationService(
	userRepo userPort.UserRepository,
	notificationRepo notificationPort.NotificationRepository,
	inbox notificationPort.Inbox,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		UserRepository:         userRepo,
		NotificationRepository: notificationRepo,
		Inbox:                  inbox,
		Logger:                 logger,
	}
}

// GetNotifications returns a page of the caller's notifications, newest first.
func (s *NotificationService) GetNotifications(ctx context.Context, username string, start, limit int64) ([]*notificationPort.NotificationDTO, error) {
	if start < 0 {
		return nil, apperror.Validation("start must not be negative.")
	}
	if limit < 1 || limit > maxPageSize {
		return nil, apperror.Validation("limit must be between 1 and 100.")
	}

	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if u == nil {
		return nil, apperror.ErrUserNotFound
	}

	ids, err := s.Inbox.Range(ctx, u.ID.String(), start, limit)
	if err != nil {
		s.Logger.Error("Error reading inbox", zap.String("userID", u.ID.String()), zap.Error(err))
		return nil, apperror.Storage(err)
	}
	if len(ids) == 0 {
		return []*notificationPort.NotificationDTO{}, nil
	}

	rows, err := s.NotificationRepository.FindByIDs(ctx, ids)
	if err != nil {
		s.Logger.Error("Error loading notifications", zap.Int("count", len(ids)), zap.Error(err))
		return nil, apperror.Storage(err)
	}
	if len(rows) < len(ids) {
		s.Logger.Debug("Inbox holds ids without rows", zap.Int("ids", len(ids)), zap.Int("rows", len(rows)))
	}

	return NewNotificationDTOs(rows), nil
}

func NewNotificationDTOs(rows []*notification.Notification) []*notificationPort.NotificationDTO {
	dtos := make([]*notificationPort.NotificationDTO, 0, len(rows))
	for _, n := range rows {
		dtos = append(dtos, &notificationPort.NotificationDTO{
			ID:         n.ID.String(),
			Kind:       string(n.Kind),
			PostID:     n.PostID.String(),
			CategoryID: n.Post.CategoryID.String(),
			Actor:      userPort.NewUserDTO(&n.Actor),
			CreatedAt:  n.CreatedAt.Format(dateTimeLayout),
		})
	}
	return dtos
}
