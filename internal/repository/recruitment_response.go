package repository

import (
	"context"
	"strings"

	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"gorm.io/gorm"
)

type ResponseQuery struct {
	FormID   string
	Status   *recruitment.Status
	Priority *recruitment.Priority
	Search   string
	Page     int
	Limit    int
}

type RecruitmentResponseRepo interface {
	Create(ctx context.Context, resp *recruitment.Response) error
	GetByID(ctx context.Context, id string) (*recruitment.Response, error)
	UpdateReview(ctx context.Context, resp *recruitment.Response) error
	Delete(ctx context.Context, id string) error
	DeleteByForm(ctx context.Context, formID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByForm(ctx context.Context, formID string) (int64, error)
	CountByForms(ctx context.Context, formIDs []string) (map[string]int64, error)
	CountByStatus(ctx context.Context) (map[recruitment.Status]int64, error)
	List(ctx context.Context, q ResponseQuery) ([]recruitment.Response, int64, error)
	FindOrphans(ctx context.Context) ([]recruitment.Response, error)
	WithTx(tx *gorm.DB) RecruitmentResponseRepo
}

type DBRecruitmentResponseRepo struct {
	db *gorm.DB
}

func NewRecruitmentResponseRepo(db *gorm.DB) *DBRecruitmentResponseRepo {
	return &DBRecruitmentResponseRepo{
		db: db,
	}
}

func (r *DBRecruitmentResponseRepo) Create(ctx context.Context, resp *recruitment.Response) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *DBRecruitmentResponseRepo) GetByID(ctx context.Context, id string) (*recruitment.Response, error) {
	var resp recruitment.Response
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&resp).Error; err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateReview writes the reviewer-owned columns only.
func (r *DBRecruitmentResponseRepo) UpdateReview(ctx context.Context, resp *recruitment.Response) error {
	return r.db.WithContext(ctx).Model(resp).
		Select("status", "priority", "rating", "review_notes", "reviewed_by", "reviewed_at", "updated_at").
		Updates(resp).Error
}

func (r *DBRecruitmentResponseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&recruitment.Response{}).Error
}

func (r *DBRecruitmentResponseRepo) DeleteByForm(ctx context.Context, formID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("form_id = ?", formID).Delete(&recruitment.Response{})
	return res.RowsAffected, res.Error
}

func (r *DBRecruitmentResponseRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&recruitment.Response{}).Count(&n).Error
	return n, err
}

func (r *DBRecruitmentResponseRepo) CountByForm(ctx context.Context, formID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&recruitment.Response{}).Where("form_id = ?", formID).Count(&n).Error
	return n, err
}

// CountByForms returns live counts keyed by form id. Forms without
// responses are absent from the map.
func (r *DBRecruitmentResponseRepo) CountByForms(ctx context.Context, formIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(formIDs))
	if len(formIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		FormID string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&recruitment.Response{}).
		Select("form_id, COUNT(*) AS count").
		Where("form_id IN ?", formIDs).
		Group("form_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.FormID] = row.Count
	}
	return counts, nil
}

func (r *DBRecruitmentResponseRepo) CountByStatus(ctx context.Context) (map[recruitment.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&recruitment.Response{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[recruitment.Status]int64, len(rows))
	for _, row := range rows {
		counts[recruitment.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *DBRecruitmentResponseRepo) List(ctx context.Context, q ResponseQuery) ([]recruitment.Response, int64, error) {
	query := r.db.WithContext(ctx).Model(&recruitment.Response{})

	if q.FormID != "" {
		query = query.Where("form_id = ?", q.FormID)
	}
	if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}
	if q.Priority != nil {
		query = query.Where("priority = ?", *q.Priority)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(applicant_name) LIKE ? OR LOWER(applicant_email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var responses []recruitment.Response
	err := paginate(query.Order("submitted_at DESC"), q.Page, q.Limit).Find(&responses).Error
	return responses, total, err
}

// FindOrphans lists responses whose form no longer exists.
func (r *DBRecruitmentResponseRepo) FindOrphans(ctx context.Context) ([]recruitment.Response, error) {
	db := r.db.WithContext(ctx)
	forms := db.Model(&recruitment.Form{}).Select("id")

	var responses []recruitment.Response
	err := db.Where("form_id NOT IN (?)", forms).
		Order("submitted_at").
		Find(&responses).Error
	return responses, err
}

func (r *DBRecruitmentResponseRepo) WithTx(tx *gorm.DB) RecruitmentResponseRepo {
	if tx == nil {
		return r
	}
	return &DBRecruitmentResponseRepo{
		db: tx,
	}
}
