package audit

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records who changed what through the admin API.
type AuditLog struct {
	ID           uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       uint           `json:"userId" gorm:"index"`
	Action       string         `json:"action" gorm:"size:20;not null;index"`
	ResourceType string         `json:"resourceType" gorm:"size:50;not null;index"`
	ResourceID   string         `json:"resourceId" gorm:"size:64;index"`
	OldData      datatypes.JSON `json:"oldData,omitempty"`
	NewData      datatypes.JSON `json:"newData,omitempty"`
	IPAddress    string         `json:"ipAddress" gorm:"size:64"`
	UserAgent    string         `json:"userAgent" gorm:"type:text"`
	Description  string         `json:"description" gorm:"type:text"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionReview = "review"
)
