package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
	"gorm.io/gorm"
)

// ProjectItem is a project or activity shown on the public site. It carries
// the pointer to the recruitment form currently advertised for it.
type ProjectItem struct {
	ID                string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title             bilingual.Text `json:"title" gorm:"embedded;embeddedPrefix:title_"`
	Description       bilingual.Text `json:"description" gorm:"embedded;embeddedPrefix:description_"`
	Category          string         `json:"category" gorm:"size:50;index"`
	RecruitmentFormID *string        `json:"recruitmentFormId" gorm:"type:varchar(36);index"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// TableName specifies the database table name
func (ProjectItem) TableName() string {
	return "project_items"
}

func (p *ProjectItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *ProjectItem) BeforeSave(tx *gorm.DB) error {
	p.Title = p.Title.Sanitized()
	p.Description = p.Description.Sanitized()
	return nil
}

// LinkedTo reports whether the project currently points at formID.
func (p *ProjectItem) LinkedTo(formID string) bool {
	return p.RecruitmentFormID != nil && *p.RecruitmentFormID == formID
}
