package repository

import (
	"context"
	"time"

	"github.com/tamilsociety/tls-platform/internal/domain/audit"
	"gorm.io/gorm"
)

type AuditQueryParams struct {
	UserID       *uint
	ResourceType *string
	ResourceID   *string
	Action       *string
	StartTime    *time.Time
	EndTime      *time.Time
	Limit        int
	Offset       int
}

type AuditRepo interface {
	GetAuditLogs(ctx context.Context, params AuditQueryParams) ([]audit.AuditLog, error)
	CreateAuditLog(ctx context.Context, entry *audit.AuditLog) error
	DeleteOldAuditLogs(ctx context.Context, retentionDays int) (int64, error)
	WithTx(tx *gorm.DB) AuditRepo
}

type DBAuditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *DBAuditRepo {
	return &DBAuditRepo{
		db: db,
	}
}

func (r *DBAuditRepo) DeleteOldAuditLogs(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&audit.AuditLog{})
	return res.RowsAffected, res.Error
}

func (r *DBAuditRepo) GetAuditLogs(ctx context.Context, params AuditQueryParams) ([]audit.AuditLog, error) {
	var logs []audit.AuditLog
	query := r.db.WithContext(ctx).Model(&audit.AuditLog{})

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.ResourceType != nil {
		query = query.Where("resource_type = ?", *params.ResourceType)
	}
	if params.ResourceID != nil {
		query = query.Where("resource_id = ?", *params.ResourceID)
	}
	if params.Action != nil {
		query = query.Where("action = ?", *params.Action)
	}
	if params.StartTime != nil {
		query = query.Where("created_at >= ?", *params.StartTime)
	}
	if params.EndTime != nil {
		query = query.Where("created_at <= ?", *params.EndTime)
	}

	query = query.Order("created_at DESC, id DESC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	err := query.Find(&logs).Error
	return logs, err
}

func (r *DBAuditRepo) CreateAuditLog(ctx context.Context, entry *audit.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *DBAuditRepo) WithTx(tx *gorm.DB) AuditRepo {
	if tx == nil {
		return r
	}
	return &DBAuditRepo{
		db: tx,
	}
}
