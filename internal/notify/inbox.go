package notify

import (
	"context"
	"fmt"

	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
	"github.com/tamilsociety/tls-platform/internal/domain/notification"
	"github.com/tamilsociety/tls-platform/internal/repository"
)

// Inbox writes a site notification for the applicant's account. Applicants
// who submitted without signing in are skipped.
type Inbox struct {
	repo repository.NotificationRepo
}

func NewInbox(repo repository.NotificationRepo) *Inbox {
	return &Inbox{repo: repo}
}

func (n *Inbox) RecruitmentAccepted(ctx context.Context, a Acceptance) error {
	if a.UserID == nil {
		return nil
	}

	title := a.FormTitle.Or()
	entry := &notification.Notification{
		UserID: *a.UserID,
		Title:  bilingual.Text{En: "Application accepted", Ta: "விண்ணப்பம் ஏற்கப்பட்டது"},
		Message: bilingual.Text{
			En: fmt.Sprintf("Your application for %s has been accepted.", title.En),
			Ta: fmt.Sprintf("%s க்கான உங்கள் விண்ணப்பம் ஏற்கப்பட்டது.", title.Ta),
		},
		Type:  notification.TypeRecruitmentAccepted,
		RefID: a.ResponseID,
	}
	if err := n.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("inbox notification: %w", err)
	}
	return nil
}
