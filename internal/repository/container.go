package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repos struct {
	Form         RecruitmentFormRepo
	Response     RecruitmentResponseRepo
	ProjectItem  ProjectItemRepo
	Notification NotificationRepo
	Audit        AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Form:         NewRecruitmentFormRepo(db),
		Response:     NewRecruitmentResponseRepo(db),
		ProjectItem:  NewProjectItemRepo(db),
		Notification: NewNotificationRepo(db),
		Audit:        NewAuditRepo(db),
		db:           db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Form:         r.Form.WithTx(tx),
		Response:     r.Response.WithTx(tx),
		ProjectItem:  r.ProjectItem.WithTx(tx),
		Notification: r.Notification.WithTx(tx),
		Audit:        r.Audit.WithTx(tx),
		db:           tx,
	}
}

// ExecTx runs fn against repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *Repos) ExecTx(ctx context.Context, fn func(*Repos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}

// Ping checks the underlying connection.
func (r *Repos) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
