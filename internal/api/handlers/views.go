package handlers

import (
	"github.com/tamilsociety/tls-platform/internal/application"
	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/pkg/response"
)

// responseView is a response as the admin dashboard reads it: statuses use
// the dashboard's vocabulary (approved, shortlisted).
type responseView struct {
	recruitment.Response
	Status string `json:"status"`
}

func toResponseView(r recruitment.Response) responseView {
	return responseView{Response: r, Status: r.Status.AdminName()}
}

func toResponseViews(items []recruitment.Response) []responseView {
	out := make([]responseView, len(items))
	for i, r := range items {
		out[i] = toResponseView(r)
	}
	return out
}

func toResponsePage(p *application.ResponsePage) response.Page[responseView, recruitment.ResponseStats] {
	return response.Page[responseView, recruitment.ResponseStats]{
		Items: toResponseViews(p.Items),
		Total: p.Total,
		Page:  p.Page,
		Limit: p.Limit,
		Stats: p.Stats,
	}
}
