package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tamilsociety/tls-platform/internal/apierrors"
	"github.com/tamilsociety/tls-platform/internal/domain/audit"
	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/internal/feed"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/pkg/response"
	"github.com/tamilsociety/tls-platform/pkg/utils"
	"gorm.io/gorm"
)

const resourceForm = "recruitment_form"

type FormPage = response.Page[recruitment.Form, recruitment.FormStats]

type RecruitmentFormService struct {
	Repos *repository.Repos
	deps  Deps
}

func NewRecruitmentFormService(repos *repository.Repos, deps Deps) *RecruitmentFormService {
	return &RecruitmentFormService{
		Repos: repos,
		deps:  deps.withDefaults(),
	}
}

func (s *RecruitmentFormService) Create(ctx context.Context, actor Actor, in recruitment.CreateFormDTO) (*recruitment.Form, error) {
	f, err := s.newForm(in)
	if err != nil {
		return nil, err
	}
	f.CreatedBy = &actor.UserID

	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		if f.ProjectItemID != nil {
			if _, err := tx.ProjectItem.GetByID(ctx, *f.ProjectItemID); err != nil {
				return notFound(err, ErrProjectNotFound)
			}
			if err := checkOverlap(ctx, tx, *f.ProjectItemID, "", f.StartDate, f.EndDate); err != nil {
				return err
			}
		}
		if err := tx.Form.Create(ctx, f); err != nil {
			return err
		}
		if f.ProjectItemID != nil {
			return tx.ProjectItem.SetRecruitmentForm(ctx, *f.ProjectItemID, &f.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(ctx, s.Repos.Audit, actor.auditEntry(audit.ActionCreate, resourceForm, f.ID, nil, f, "Created recruitment form: "+f.Title.En))
	return f, nil
}

// CreateForProject creates a form already linked to projectID.
func (s *RecruitmentFormService) CreateForProject(ctx context.Context, actor Actor, projectID string, in recruitment.CreateFormDTO) (*recruitment.Form, error) {
	in.ProjectItemID = &projectID
	return s.Create(ctx, actor, in)
}

func (s *RecruitmentFormService) newForm(in recruitment.CreateFormDTO) (*recruitment.Form, error) {
	if in.Title == nil || !in.Title.Sanitized().Complete() {
		return nil, apierrors.Validation("title must include both en and ta")
	}
	role, ok := recruitment.ParseRole(in.Role)
	if !ok {
		return nil, apierrors.Validation("invalid role '%s'", in.Role)
	}
	fields, err := recruitment.NormalizeFields(in.Fields, s.deps.Now())
	if err != nil {
		return nil, apierrors.Validation("%s", err.Error())
	}

	f := &recruitment.Form{
		Title:             *in.Title,
		Role:              role,
		Fields:            fields,
		ProjectItemID:     trimmedID(in.ProjectItemID),
		StartDate:         in.StartDate.Ptr(),
		EndDate:           in.EndDate.Ptr(),
		MaxResponses:      in.MaxResponses,
		IsActive:          in.IsActive == nil || *in.IsActive,
		EmailNotification: in.EmailNotification != nil && *in.EmailNotification,
	}
	if in.Description != nil {
		f.Description = in.Description.Or()
	}
	if err := checkSchedule(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *RecruitmentFormService) Update(ctx context.Context, actor Actor, id string, in recruitment.UpdateFormDTO) (*recruitment.Form, error) {
	var before recruitment.Form
	var updated *recruitment.Form

	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		f, err := tx.Form.GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrFormNotFound)
		}
		before = *f
		previousProject := f.ProjectItemID

		if err := s.applyUpdate(f, in); err != nil {
			return err
		}
		if in.ProjectItemID.Set && f.ProjectItemID != nil {
			if _, err := tx.ProjectItem.GetByID(ctx, *f.ProjectItemID); err != nil {
				return notFound(err, ErrProjectNotFound)
			}
		}
		if f.IsActive && f.ProjectItemID != nil {
			if err := checkOverlap(ctx, tx, *f.ProjectItemID, f.ID, f.StartDate, f.EndDate); err != nil {
				return err
			}
		}

		if err := tx.Form.Update(ctx, f); err != nil {
			return err
		}
		if in.ProjectItemID.Set {
			if err := repoint(ctx, tx, f.ID, previousProject, f.ProjectItemID); err != nil {
				return err
			}
		}
		updated = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(ctx, s.Repos.Audit, actor.auditEntry(audit.ActionUpdate, resourceForm, id, before, updated, "Updated recruitment form: "+updated.Title.En))
	return updated, nil
}

func (s *RecruitmentFormService) applyUpdate(f *recruitment.Form, in recruitment.UpdateFormDTO) error {
	if in.Title != nil {
		if !in.Title.Sanitized().Complete() {
			return apierrors.Validation("title must include both en and ta")
		}
		f.Title = *in.Title
	}
	if in.Description != nil {
		f.Description = in.Description.Or()
	}
	if in.Role != nil {
		role, ok := recruitment.ParseRole(*in.Role)
		if !ok {
			return apierrors.Validation("invalid role '%s'", *in.Role)
		}
		f.Role = role
	}
	if in.Fields != nil {
		fields, err := recruitment.NormalizeFields(*in.Fields, s.deps.Now())
		if err != nil {
			return apierrors.Validation("%s", err.Error())
		}
		f.Fields = fields
	}
	if in.ProjectItemID.Set {
		f.ProjectItemID = trimmedID(in.ProjectItemID.Value)
	}
	if in.StartDate.Set {
		f.StartDate = in.StartDate.Value.Ptr()
	}
	if in.EndDate.Set {
		f.EndDate = in.EndDate.Value.Ptr()
	}
	if in.MaxResponses.Set {
		f.MaxResponses = in.MaxResponses.Value
	}
	if in.IsActive != nil {
		f.IsActive = *in.IsActive
	}
	if in.EmailNotification != nil {
		f.EmailNotification = *in.EmailNotification
	}
	return checkSchedule(f)
}

// repoint moves the project pointer after a form's association changed.
// The old project is only cleared when it still points at this form.
func repoint(ctx context.Context, tx *repository.Repos, formID string, from, to *string) error {
	if from != nil && (to == nil || *from != *to) {
		p, err := tx.ProjectItem.GetByID(ctx, *from)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return err
		case p.LinkedTo(formID):
			if err := tx.ProjectItem.SetRecruitmentForm(ctx, *from, nil); err != nil {
				return err
			}
		}
	}
	if to != nil {
		return tx.ProjectItem.SetRecruitmentForm(ctx, *to, &formID)
	}
	return nil
}

func (s *RecruitmentFormService) Delete(ctx context.Context, actor Actor, id string) error {
	var deleted *recruitment.Form
	var removed int64

	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		f, err := tx.Form.GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrFormNotFound)
		}
		if removed, err = tx.Response.DeleteByForm(ctx, id); err != nil {
			return err
		}
		if _, err := tx.ProjectItem.ClearRecruitmentForm(ctx, id); err != nil {
			return err
		}
		if err := tx.Form.Delete(ctx, id); err != nil {
			return err
		}
		deleted = f
		return nil
	})
	if err != nil {
		return err
	}

	s.deps.removeAttachments(ctx, recruitment.FormUploadPrefix(id))
	s.deps.Feed.Publish(feed.Event{Type: feed.EventFormDeleted, FormID: id})
	utils.LogAuditWithConsole(ctx, s.Repos.Audit, actor.auditEntry(audit.ActionDelete, resourceForm, id, deleted, nil,
		fmt.Sprintf("Deleted recruitment form: %s with %d responses", deleted.Title.En, removed)))
	return nil
}

// Get returns the form with its live response count.
func (s *RecruitmentFormService) Get(ctx context.Context, id string) (*recruitment.Form, error) {
	f, err := s.Repos.Form.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrFormNotFound)
	}
	n, err := s.Repos.Response.CountByForm(ctx, id)
	if err != nil {
		return nil, err
	}
	f.CurrentResponses = int(n)
	return f, nil
}

// List pages through forms. currentResponses on every item is recounted
// from the response store rather than read from the cached column.
func (s *RecruitmentFormService) List(ctx context.Context, q repository.FormQuery) (*FormPage, error) {
	q.Page, q.Limit = repository.NormalizePage(q.Page, q.Limit)

	forms, total, err := s.Repos.Form.List(ctx, q)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(forms))
	for i, f := range forms {
		ids[i] = f.ID
	}
	counts, err := s.Repos.Response.CountByForms(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range forms {
		forms[i].CurrentResponses = int(counts[forms[i].ID])
	}

	stats, err := s.Repos.Form.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if stats.TotalSubmissions, err = s.Repos.Response.Count(ctx); err != nil {
		return nil, err
	}

	if forms == nil {
		forms = []recruitment.Form{}
	}
	return &FormPage{Items: forms, Total: total, Page: q.Page, Limit: q.Limit, Stats: stats}, nil
}

// GetActiveFormForProject resolves the project's pointer. A missing pointer
// or a dangling one both read as inactive.
func (s *RecruitmentFormService) GetActiveFormForProject(ctx context.Context, projectID string) (*recruitment.ProjectRecruitment, error) {
	p, err := s.Repos.ProjectItem.GetByID(ctx, projectID)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}

	inactive := &recruitment.ProjectRecruitment{Status: recruitment.DisplayInactive}
	if p.RecruitmentFormID == nil {
		return inactive, nil
	}
	f, err := s.Repos.Form.GetByID(ctx, *p.RecruitmentFormID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inactive, nil
	}
	if err != nil {
		return nil, err
	}
	live, err := s.Repos.Response.CountByForm(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	f.CurrentResponses = int(live)
	return &recruitment.ProjectRecruitment{Form: f, Status: f.DisplayStatusAt(s.deps.Now())}, nil
}

// checkOverlap rejects a window that intersects any other active form
// associated with the project.
func checkOverlap(ctx context.Context, tx *repository.Repos, projectID, excludeID string, start, end *time.Time) error {
	others, err := tx.Form.ListActiveByProject(ctx, projectID, excludeID)
	if err != nil {
		return err
	}

	var overlaps []apierrors.Overlap
	for _, other := range others {
		if other.OverlapsWindow(start, end) {
			overlaps = append(overlaps, apierrors.Overlap{
				ID:        other.ID,
				Title:     other.Title.String(),
				StartDate: other.StartDate,
				EndDate:   other.EndDate,
			})
		}
	}
	if len(overlaps) > 0 {
		return apierrors.Conflict(ErrDateOverlap.Error(), overlaps).WithCause(ErrDateOverlap)
	}
	return nil
}

func checkSchedule(f *recruitment.Form) error {
	if f.StartDate != nil && f.EndDate != nil && !f.EndDate.After(*f.StartDate) {
		return apierrors.Validation("endDate must be after startDate")
	}
	if f.MaxResponses != nil && *f.MaxResponses < 1 {
		return apierrors.Validation("maxResponses must be at least 1")
	}
	return nil
}

func trimmedID(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}
