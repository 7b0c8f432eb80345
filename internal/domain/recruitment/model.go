package recruitment

import (
	"time"

	"github.com/google/uuid"
	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Form is a recruitment application template.
type Form struct {
	ID                string                         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title             bilingual.Text                 `json:"title" gorm:"embedded;embeddedPrefix:title_"`
	Description       bilingual.Text                 `json:"description" gorm:"embedded;embeddedPrefix:description_"`
	Role              Role                           `json:"role" gorm:"type:varchar(20);not null;index"`
	Fields            datatypes.JSONSlice[FormField] `json:"fields"`
	ProjectItemID     *string                        `json:"projectItemId" gorm:"type:varchar(36);index"`
	IsActive          bool                           `json:"isActive" gorm:"not null;index"`
	StartDate         *time.Time                     `json:"startDate"`
	EndDate           *time.Time                     `json:"endDate"`
	MaxResponses      *int                           `json:"maxResponses"`
	CurrentResponses  int                            `json:"currentResponses" gorm:"not null;default:0"`
	EmailNotification bool                           `json:"emailNotification" gorm:"not null"`
	CreatedBy         *uint                          `json:"createdBy,omitempty"`
	CreatedAt         time.Time                      `json:"createdAt"`
	UpdatedAt         time.Time                      `json:"updatedAt"`
}

func (Form) TableName() string {
	return "recruitment_forms"
}

func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave strips markup from the free text an admin typed in.
func (f *Form) BeforeSave(tx *gorm.DB) error {
	f.Title = f.Title.Sanitized()
	f.Description = f.Description.Sanitized()
	return nil
}

// IsFull reports whether the stored counter has reached capacity.
func (f *Form) IsFull() bool {
	return f.MaxResponses != nil && f.CurrentResponses >= *f.MaxResponses
}

func (f *Form) NotStartedAt(now time.Time) bool {
	return f.StartDate != nil && now.Before(*f.StartDate)
}

func (f *Form) EndedAt(now time.Time) bool {
	return f.EndDate != nil && now.After(*f.EndDate)
}

// OverlapsWindow is the interval intersection test with open bounds treated
// as -inf / +inf.
func (f *Form) OverlapsWindow(start, end *time.Time) bool {
	return Overlaps(start, end, f.StartDate, f.EndDate)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd *time.Time) bool {
	// aStart < bEnd
	if aStart != nil && bEnd != nil && !aStart.Before(*bEnd) {
		return false
	}
	// bStart < aEnd
	if bStart != nil && aEnd != nil && !bStart.Before(*aEnd) {
		return false
	}
	return true
}

// DisplayStatus is the public-facing state of a form, independent of the
// isActive flag stored on it.
type DisplayStatus string

const (
	DisplayInactive DisplayStatus = "inactive"
	DisplayFull     DisplayStatus = "full"
	DisplayExpired  DisplayStatus = "expired"
	DisplayUpcoming DisplayStatus = "upcoming"
	DisplayOpen     DisplayStatus = "open"
)

// DisplayStatusAt evaluates inactive > full > expired > upcoming > open.
func (f *Form) DisplayStatusAt(now time.Time) DisplayStatus {
	switch {
	case !f.IsActive:
		return DisplayInactive
	case f.IsFull():
		return DisplayFull
	case f.EndedAt(now):
		return DisplayExpired
	case f.NotStartedAt(now):
		return DisplayUpcoming
	default:
		return DisplayOpen
	}
}

// Response is one applicant's submission against a form.
type Response struct {
	ID             string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FormID         string            `json:"formId" gorm:"type:varchar(36);not null;index"`
	ApplicantName  string            `json:"applicantName" gorm:"size:200;not null"`
	ApplicantEmail string            `json:"applicantEmail" gorm:"size:320;not null;index"`
	RoleApplied    string            `json:"roleApplied" gorm:"size:20"`
	Answers        datatypes.JSONMap `json:"answers"`
	Status         Status            `json:"status" gorm:"type:varchar(20);not null;index"`
	Priority       Priority          `json:"priority" gorm:"type:varchar(10);not null"`
	Rating         *int              `json:"rating"`
	ReviewNotes    string            `json:"reviewNotes" gorm:"type:text"`
	ReviewedBy     *uint             `json:"reviewedBy"`
	ReviewedAt     *time.Time        `json:"reviewedAt"`
	UserRef        *uint             `json:"userRef" gorm:"index"`
	SubmittedAt    time.Time         `json:"submittedAt" gorm:"not null;index"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func (Response) TableName() string {
	return "recruitment_responses"
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// FormUploadPrefix is where attachments for a form are stored.
func FormUploadPrefix(formID string) string {
	return "recruitment/" + formID + "/"
}

// ResponseUploadPrefix is where attachments for a single response are stored.
func ResponseUploadPrefix(formID, responseID string) string {
	return FormUploadPrefix(formID) + responseID + "/"
}
