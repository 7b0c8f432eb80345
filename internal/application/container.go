package application

import (
	"context"
	"time"

	"github.com/tamilsociety/tls-platform/internal/feed"
	"github.com/tamilsociety/tls-platform/internal/metrics"
	"github.com/tamilsociety/tls-platform/internal/notify"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/internal/storage"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"go.uber.org/zap"
)

// Deps are the collaborators behind the best-effort side effects. Nil
// members fall back to no-ops.
type Deps struct {
	Notifier    notify.Notifier
	Attachments storage.AttachmentStore
	Feed        feed.Publisher
	Now         func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Notifier == nil {
		d.Notifier = notify.Nop{}
	}
	if d.Feed == nil {
		d.Feed = feed.Nop{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// removeAttachments never fails the caller; the primary change has already
// been committed.
func (d Deps) removeAttachments(ctx context.Context, prefix string) {
	if d.Attachments == nil {
		return
	}
	n, err := d.Attachments.RemovePrefix(ctx, prefix)
	if err != nil {
		metrics.CleanupFailures.Inc()
		logger.Log.Warn("attachment cleanup failed", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	if n > 0 {
		logger.Log.Info("attachments removed", zap.String("prefix", prefix), zap.Int("count", n))
	}
}

type Services struct {
	Audit        *AuditService
	Form         *RecruitmentFormService
	Response     *RecruitmentResponseService
	Reconcile    *ReconcileService
	ProjectItem  *ProjectItemService
	Notification *NotificationService
}

func New(repos *repository.Repos, deps Deps) *Services {
	deps = deps.withDefaults()
	return &Services{
		Audit:        NewAuditService(repos),
		Form:         NewRecruitmentFormService(repos, deps),
		Response:     NewRecruitmentResponseService(repos, deps),
		Reconcile:    NewReconcileService(repos),
		ProjectItem:  NewProjectItemService(repos),
		Notification: NewNotificationService(repos),
	}
}
