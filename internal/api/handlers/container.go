package handlers

import (
	"github.com/tamilsociety/tls-platform/internal/application"
	"github.com/tamilsociety/tls-platform/internal/feed"
	"github.com/tamilsociety/tls-platform/internal/repository"
)

type Handlers struct {
	Audit        *AuditHandler
	Form         *RecruitmentFormHandler
	Response     *RecruitmentResponseHandler
	ProjectItem  *ProjectItemHandler
	Notification *NotificationHandler
	Feed         *FeedHandler
	Health       *HealthHandler
}

func New(svc *application.Services, repos *repository.Repos, hub *feed.Hub) *Handlers {
	return &Handlers{
		Audit:        NewAuditHandler(svc.Audit),
		Form:         NewRecruitmentFormHandler(svc.Form, svc.Reconcile),
		Response:     NewRecruitmentResponseHandler(svc.Response, svc.Reconcile),
		ProjectItem:  NewProjectItemHandler(svc.ProjectItem),
		Notification: NewNotificationHandler(svc.Notification),
		Feed:         NewFeedHandler(hub),
		Health:       NewHealthHandler(repos),
	}
}
