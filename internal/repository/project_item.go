package repository

import (
	"context"
	"strings"
	"time"

	"github.com/tamilsociety/tls-platform/internal/domain/project"
	"gorm.io/gorm"
)

type ProjectItemRepo interface {
	Create(ctx context.Context, p *project.ProjectItem) error
	GetByID(ctx context.Context, id string) (*project.ProjectItem, error)
	List(ctx context.Context, q project.ListQuery) ([]project.ProjectItem, int64, error)
	SetRecruitmentForm(ctx context.Context, id string, formID *string) error
	ClearRecruitmentForm(ctx context.Context, formID string) (int64, error)
	WithTx(tx *gorm.DB) ProjectItemRepo
}

type DBProjectItemRepo struct {
	db *gorm.DB
}

func NewProjectItemRepo(db *gorm.DB) *DBProjectItemRepo {
	return &DBProjectItemRepo{
		db: db,
	}
}

func (r *DBProjectItemRepo) Create(ctx context.Context, p *project.ProjectItem) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *DBProjectItemRepo) GetByID(ctx context.Context, id string) (*project.ProjectItem, error) {
	var p project.ProjectItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *DBProjectItemRepo) List(ctx context.Context, q project.ListQuery) ([]project.ProjectItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&project.ProjectItem{})

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(title_en) LIKE ? OR LOWER(title_ta) LIKE ?", like, like)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []project.ProjectItem
	err := paginate(query.Order("created_at DESC"), q.Page, q.Limit).Find(&items).Error
	return items, total, err
}

// SetRecruitmentForm points the project at formID, or clears the pointer
// when formID is nil.
func (r *DBProjectItemRepo) SetRecruitmentForm(ctx context.Context, id string, formID *string) error {
	return r.db.WithContext(ctx).Model(&project.ProjectItem{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"recruitment_form_id": formID,
			"updated_at":          time.Now(),
		}).Error
}

// ClearRecruitmentForm unsets the pointer on every project pointing at formID.
func (r *DBProjectItemRepo) ClearRecruitmentForm(ctx context.Context, formID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&project.ProjectItem{}).
		Where("recruitment_form_id = ?", formID).
		UpdateColumns(map[string]any{
			"recruitment_form_id": nil,
			"updated_at":          time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *DBProjectItemRepo) WithTx(tx *gorm.DB) ProjectItemRepo {
	if tx == nil {
		return r
	}
	return &DBProjectItemRepo{
		db: tx,
	}
}
