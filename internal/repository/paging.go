package repository

import "gorm.io/gorm"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps paging input to 1-based pages of at most MaxPageSize.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func paginate(query *gorm.DB, page, limit int) *gorm.DB {
	page, limit = NormalizePage(page, limit)
	return query.Offset((page - 1) * limit).Limit(limit)
}
