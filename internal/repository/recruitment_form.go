package repository

import (
	"context"
	"strings"

	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FormQuery struct {
	Search        string
	Role          *recruitment.Role
	IsActive      *bool
	ProjectItemID *string
	Page          int
	Limit         int
}

type RecruitmentFormRepo interface {
	Create(ctx context.Context, f *recruitment.Form) error
	GetByID(ctx context.Context, id string) (*recruitment.Form, error)
	GetByIDForUpdate(ctx context.Context, id string) (*recruitment.Form, error)
	Update(ctx context.Context, f *recruitment.Form) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q FormQuery) ([]recruitment.Form, int64, error)
	ListIDs(ctx context.Context) ([]string, error)
	ListActiveByProject(ctx context.Context, projectItemID, excludeID string) ([]recruitment.Form, error)
	IncrementIfBelowCapacity(ctx context.Context, id string) (bool, error)
	Decrement(ctx context.Context, id string) error
	SetResponseCount(ctx context.Context, id string, n int64) error
	Stats(ctx context.Context) (recruitment.FormStats, error)
	WithTx(tx *gorm.DB) RecruitmentFormRepo
}

type DBRecruitmentFormRepo struct {
	db *gorm.DB
}

func NewRecruitmentFormRepo(db *gorm.DB) *DBRecruitmentFormRepo {
	return &DBRecruitmentFormRepo{
		db: db,
	}
}

func (r *DBRecruitmentFormRepo) Create(ctx context.Context, f *recruitment.Form) error {
	f.CurrentResponses = 0
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *DBRecruitmentFormRepo) GetByID(ctx context.Context, id string) (*recruitment.Form, error) {
	var f recruitment.Form
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// GetByIDForUpdate reads the form and holds its row lock until the
// surrounding transaction ends. Counter increments and decrements wait on
// that lock. SQLite has no row locks; its single writer serializes instead.
func (r *DBRecruitmentFormRepo) GetByIDForUpdate(ctx context.Context, id string) (*recruitment.Form, error) {
	query := r.db.WithContext(ctx)
	if query.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var f recruitment.Form
	if err := query.Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// Update writes every column except the counter, which only moves through
// the counter methods below.
func (r *DBRecruitmentFormRepo) Update(ctx context.Context, f *recruitment.Form) error {
	return r.db.WithContext(ctx).Model(f).
		Select("*").
		Omit("id", "current_responses", "created_by", "created_at").
		Updates(f).Error
}

func (r *DBRecruitmentFormRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&recruitment.Form{}).Error
}

func (r *DBRecruitmentFormRepo) List(ctx context.Context, q FormQuery) ([]recruitment.Form, int64, error) {
	query := r.db.WithContext(ctx).Model(&recruitment.Form{})

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(title_en) LIKE ? OR LOWER(title_ta) LIKE ?", like, like)
	}
	if q.Role != nil {
		query = query.Where("role = ?", *q.Role)
	}
	if q.IsActive != nil {
		query = query.Where("is_active = ?", *q.IsActive)
	}
	if q.ProjectItemID != nil {
		query = query.Where("project_item_id = ?", *q.ProjectItemID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var forms []recruitment.Form
	err := paginate(query.Order("created_at DESC"), q.Page, q.Limit).Find(&forms).Error
	return forms, total, err
}

func (r *DBRecruitmentFormRepo) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&recruitment.Form{}).Order("created_at").Pluck("id", &ids).Error
	return ids, err
}

// ListActiveByProject returns the active forms associated with a project,
// leaving out excludeID (the form being edited).
func (r *DBRecruitmentFormRepo) ListActiveByProject(ctx context.Context, projectItemID, excludeID string) ([]recruitment.Form, error) {
	query := r.db.WithContext(ctx).
		Where("project_item_id = ? AND is_active = ?", projectItemID, true)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var forms []recruitment.Form
	err := query.Order("start_date").Find(&forms).Error
	return forms, err
}

// IncrementIfBelowCapacity bumps the counter in a single statement guarded
// by the capacity check. It returns false when the form is full or gone.
func (r *DBRecruitmentFormRepo) IncrementIfBelowCapacity(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&recruitment.Form{}).
		Where("id = ? AND (max_responses IS NULL OR current_responses < max_responses)", id).
		UpdateColumn("current_responses", gorm.Expr("current_responses + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Decrement never takes the counter below zero.
func (r *DBRecruitmentFormRepo) Decrement(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&recruitment.Form{}).
		Where("id = ? AND current_responses > 0", id).
		UpdateColumn("current_responses", gorm.Expr("current_responses - 1")).Error
}

func (r *DBRecruitmentFormRepo) SetResponseCount(ctx context.Context, id string, n int64) error {
	return r.db.WithContext(ctx).Model(&recruitment.Form{}).
		Where("id = ?", id).
		UpdateColumn("current_responses", n).Error
}

// Stats fills everything but TotalSubmissions, which comes from the
// response store.
func (r *DBRecruitmentFormRepo) Stats(ctx context.Context) (recruitment.FormStats, error) {
	var stats recruitment.FormStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&recruitment.Form{}).Count(&stats.TotalForms).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&recruitment.Form{}).Where("is_active = ?", true).Count(&stats.ActiveForms).Error; err != nil {
		return stats, err
	}

	var forms []recruitment.Form
	if err := db.Select("id", "fields").Find(&forms).Error; err != nil {
		return stats, err
	}
	if len(forms) > 0 {
		fields := 0
		for _, f := range forms {
			fields += len(f.Fields)
		}
		stats.AverageFields = float64(fields) / float64(len(forms))
	}
	return stats, nil
}

func (r *DBRecruitmentFormRepo) WithTx(tx *gorm.DB) RecruitmentFormRepo {
	if tx == nil {
		return r
	}
	return &DBRecruitmentFormRepo{
		db: tx,
	}
}
