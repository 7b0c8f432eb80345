package application

import (
	"context"

	"github.com/tamilsociety/tls-platform/internal/apierrors"
	"github.com/tamilsociety/tls-platform/internal/domain/notification"
	"github.com/tamilsociety/tls-platform/internal/repository"
)

const notificationPageSize = 50

type NotificationService struct {
	Repos *repository.Repos
}

func NewNotificationService(repos *repository.Repos) *NotificationService {
	return &NotificationService{
		Repos: repos,
	}
}

func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool) ([]notification.Notification, error) {
	items, err := s.Repos.Notification.ListByUser(ctx, userID, unreadOnly, notificationPageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []notification.Notification{}
	}
	return items, nil
}

// MarkRead only touches notifications owned by userID; anything else reads
// as missing.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	ok, err := s.Repos.Notification.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.Wrap(apierrors.KindNotFound, ErrNotificationNotFound)
	}
	return nil
}
