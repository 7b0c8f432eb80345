package repository

import (
	"context"

	"github.com/tamilsociety/tls-platform/internal/domain/notification"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *notification.Notification) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) (bool, error)
	WithTx(tx *gorm.DB) NotificationRepo
}

type DBNotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *DBNotificationRepo {
	return &DBNotificationRepo{
		db: db,
	}
}

func (r *DBNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *DBNotificationRepo) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]notification.Notification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []notification.Notification
	err := query.Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

// MarkRead only touches notifications owned by userID. It reports whether
// a row matched.
func (r *DBNotificationRepo) MarkRead(ctx context.Context, id, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("is_read", true)
	return res.RowsAffected > 0, res.Error
}

func (r *DBNotificationRepo) WithTx(tx *gorm.DB) NotificationRepo {
	if tx == nil {
		return r
	}
	return &DBNotificationRepo{
		db: tx,
	}
}
