package notification

import (
	"time"

	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
)

type Type string

const (
	TypeRecruitmentAccepted Type = "recruitment_accepted"
)

// Notification is an inbox entry for a site user.
type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint           `json:"userId" gorm:"not null;index"`
	Title     bilingual.Text `json:"title" gorm:"embedded;embeddedPrefix:title_"`
	Message   bilingual.Text `json:"message" gorm:"embedded;embeddedPrefix:message_"`
	Type      Type           `json:"type" gorm:"type:varchar(40);not null"`
	RefID     string         `json:"refId" gorm:"type:varchar(36);index"`
	IsRead    bool           `json:"isRead" gorm:"not null"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
