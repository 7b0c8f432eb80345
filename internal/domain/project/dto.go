package project

import "github.com/tamilsociety/tls-platform/internal/domain/bilingual"

type CreateProjectItemDTO struct {
	Title       bilingual.Text `json:"title" binding:"required"`
	Description bilingual.Text `json:"description"`
	Category    string         `json:"category"`
}

type ListQuery struct {
	Search   string
	Category string
	Page     int
	Limit    int
}
