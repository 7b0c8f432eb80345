package application

import (
	"context"
	"strings"

	"github.com/tamilsociety/tls-platform/internal/apierrors"
	"github.com/tamilsociety/tls-platform/internal/domain/audit"
	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/internal/feed"
	"github.com/tamilsociety/tls-platform/internal/metrics"
	"github.com/tamilsociety/tls-platform/internal/notify"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"github.com/tamilsociety/tls-platform/pkg/response"
	"github.com/tamilsociety/tls-platform/pkg/sanitize"
	"github.com/tamilsociety/tls-platform/pkg/utils"
	"go.uber.org/zap"
)

const resourceResponse = "recruitment_response"

type ResponsePage = response.Page[recruitment.Response, recruitment.ResponseStats]

type RecruitmentResponseService struct {
	Repos *repository.Repos
	deps  Deps
}

func NewRecruitmentResponseService(repos *repository.Repos, deps Deps) *RecruitmentResponseService {
	return &RecruitmentResponseService{
		Repos: repos,
		deps:  deps.withDefaults(),
	}
}

// Submit records an application. Every precondition is checked before the
// counter moves; the capacity check is repeated atomically by the
// conditional increment so concurrent submissions cannot overfill a form.
func (s *RecruitmentResponseService) Submit(ctx context.Context, in recruitment.SubmitResponseDTO) (*recruitment.Response, error) {
	now := s.deps.Now()

	form, err := s.Repos.Form.GetByID(ctx, in.FormID)
	if err != nil {
		return nil, rejected("not_found", notFound(err, ErrFormNotFound))
	}

	switch {
	case !form.IsActive:
		return nil, rejected("inactive", apierrors.Wrap(apierrors.KindState, ErrFormInactive))
	case form.NotStartedAt(now):
		return nil, rejected("not_open", apierrors.Wrap(apierrors.KindState, ErrFormNotOpen))
	case form.EndedAt(now):
		return nil, rejected("closed", apierrors.Wrap(apierrors.KindState, ErrFormClosed))
	case form.IsFull():
		return nil, rejected("full", apierrors.Wrap(apierrors.KindState, ErrFormFull))
	}

	answers := map[string]any(in.Answers)
	if answers == nil {
		answers = map[string]any{}
	}
	if err := checkAnswers(form.Fields, answers); err != nil {
		return nil, rejected("invalid", err)
	}
	name, email, err := applicant(in, answers)
	if err != nil {
		return nil, rejected("invalid", err)
	}

	resp := &recruitment.Response{
		FormID:         form.ID,
		ApplicantName:  name,
		ApplicantEmail: email,
		RoleApplied:    form.Role.ApplicantName(),
		Answers:        cleanAnswers(answers),
		Status:         recruitment.StatusPending,
		Priority:       recruitment.PriorityMedium,
		UserRef:        in.UserRef,
		SubmittedAt:    now,
	}

	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		ok, err := tx.Form.IncrementIfBelowCapacity(ctx, form.ID)
		if err != nil {
			return err
		}
		if !ok {
			// Full, or deleted since the precondition checks.
			if _, err := tx.Form.GetByID(ctx, form.ID); err != nil {
				return notFound(err, ErrFormNotFound)
			}
			return apierrors.Wrap(apierrors.KindState, ErrFormFull)
		}
		return tx.Response.Create(ctx, resp)
	})
	if err != nil {
		switch {
		case apierrors.IsKind(err, apierrors.KindNotFound):
			return nil, rejected("not_found", err)
		case apierrors.IsKind(err, apierrors.KindState):
			return nil, rejected("full", err)
		}
		return nil, err
	}

	metrics.ResponsesSubmitted.Inc()
	s.deps.Feed.Publish(feed.Event{Type: feed.EventSubmitted, FormID: form.ID, ResponseID: resp.ID, Status: resp.Status.AdminName(), At: now})
	return resp, nil
}

// SubmitForProject submits against the form the project currently points to.
func (s *RecruitmentResponseService) SubmitForProject(ctx context.Context, projectID string, in recruitment.SubmitResponseDTO) (*recruitment.Response, error) {
	p, err := s.Repos.ProjectItem.GetByID(ctx, projectID)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	if p.RecruitmentFormID == nil {
		return nil, apierrors.Wrapf(apierrors.KindNotFound, ErrFormNotFound, "no recruitment form is linked to this project")
	}
	in.FormID = *p.RecruitmentFormID
	return s.Submit(ctx, in)
}

func rejected(reason string, err error) error {
	metrics.SubmissionsRejected.WithLabelValues(reason).Inc()
	return err
}

// applicant resolves the applicant's name and email, falling back to the
// common answer keys when the top-level values are absent.
func applicant(in recruitment.SubmitResponseDTO, answers map[string]any) (string, string, error) {
	name := sanitize.Text(in.ApplicantName)
	if name == "" {
		name = sanitize.Text(firstString(answers, "name", "fullName", "applicantName"))
	}
	if name == "" {
		return "", "", apierrors.Validation("applicantName is required")
	}

	email := strings.TrimSpace(in.ApplicantEmail)
	if email == "" {
		email = strings.TrimSpace(firstString(answers, "email", "applicantEmail"))
	}
	if email != "" && validate.Var(email, "email") != nil {
		return "", "", apierrors.Validation("applicantEmail must be a valid email address")
	}
	return name, strings.ToLower(email), nil
}

func firstString(answers map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := answers[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Review applies an admin decision. The reviewer and time are stamped on
// every call; the applicant is only notified on the transition into
// accepted.
func (s *RecruitmentResponseService) Review(ctx context.Context, actor Actor, in recruitment.ReviewResponseDTO) (*recruitment.Response, error) {
	resp, err := s.Repos.Response.GetByID(ctx, in.ID)
	if err != nil {
		return nil, notFound(err, ErrResponseNotFound)
	}
	before := *resp
	previous := resp.Status

	if in.Status != nil {
		status, ok := recruitment.ParseStatus(*in.Status)
		if !ok {
			return nil, apierrors.Validation("invalid status '%s'", *in.Status)
		}
		resp.Status = status
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, apierrors.Validation("rating must be between 1 and 5")
		}
		resp.Rating = in.Rating
	}
	if in.Priority != nil {
		priority, ok := recruitment.ParsePriority(*in.Priority)
		if !ok {
			return nil, apierrors.Validation("invalid priority '%s'", *in.Priority)
		}
		resp.Priority = priority
	}
	if in.ReviewNotes != nil {
		resp.ReviewNotes = sanitize.Text(*in.ReviewNotes)
	}

	now := s.deps.Now()
	reviewer := actor.UserID
	resp.ReviewedBy = &reviewer
	resp.ReviewedAt = &now
	resp.UpdatedAt = now

	if err := s.Repos.Response.UpdateReview(ctx, resp); err != nil {
		return nil, err
	}

	if previous != recruitment.StatusAccepted && resp.Status == recruitment.StatusAccepted {
		s.notifyAccepted(ctx, resp)
	}

	metrics.ResponsesReviewed.WithLabelValues(string(resp.Status)).Inc()
	s.deps.Feed.Publish(feed.Event{Type: feed.EventReviewed, FormID: resp.FormID, ResponseID: resp.ID, Status: resp.Status.AdminName(), At: now})
	utils.LogAuditWithConsole(ctx, s.Repos.Audit, actor.auditEntry(audit.ActionReview, resourceResponse, resp.ID, before, resp,
		"Reviewed application from "+resp.ApplicantName+": "+resp.Status.AdminName()))
	return resp, nil
}

// notifyAccepted is best-effort. Applicants with neither an account nor an
// email-enabled form have nobody to tell.
func (s *RecruitmentResponseService) notifyAccepted(ctx context.Context, resp *recruitment.Response) {
	a := notify.Acceptance{
		ResponseID:     resp.ID,
		FormID:         resp.FormID,
		UserID:         resp.UserRef,
		ApplicantName:  resp.ApplicantName,
		ApplicantEmail: resp.ApplicantEmail,
	}
	if form, err := s.Repos.Form.GetByID(ctx, resp.FormID); err == nil {
		a.FormTitle = form.Title
		a.SendEmail = form.EmailNotification
	}
	if a.UserID == nil && !a.SendEmail {
		return
	}

	if err := s.deps.Notifier.RecruitmentAccepted(ctx, a); err != nil {
		metrics.NotificationFailures.Inc()
		logger.Log.Warn("acceptance notification failed",
			zap.String("response", resp.ID),
			zap.String("form", resp.FormID),
			zap.Error(err),
		)
	}
}

// Delete removes a response and decrements exactly the form it named. An
// orphaned response has no counter to decrement.
func (s *RecruitmentResponseService) Delete(ctx context.Context, actor Actor, id string) error {
	var deleted *recruitment.Response

	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		resp, err := tx.Response.GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrResponseNotFound)
		}
		if err := tx.Response.Delete(ctx, id); err != nil {
			return err
		}
		if err := tx.Form.Decrement(ctx, resp.FormID); err != nil {
			return err
		}
		deleted = resp
		return nil
	})
	if err != nil {
		return err
	}

	s.deps.removeAttachments(ctx, recruitment.ResponseUploadPrefix(deleted.FormID, deleted.ID))
	metrics.ResponsesDeleted.Inc()
	s.deps.Feed.Publish(feed.Event{Type: feed.EventDeleted, FormID: deleted.FormID, ResponseID: id, At: s.deps.Now()})
	utils.LogAuditWithConsole(ctx, s.Repos.Audit, actor.auditEntry(audit.ActionDelete, resourceResponse, id, deleted, nil,
		"Deleted application from "+deleted.ApplicantName))
	return nil
}

func (s *RecruitmentResponseService) Get(ctx context.Context, id string) (*recruitment.Response, error) {
	resp, err := s.Repos.Response.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrResponseNotFound)
	}
	return resp, nil
}

// List pages through responses. Stats cover every response, not just the
// filtered ones.
func (s *RecruitmentResponseService) List(ctx context.Context, q repository.ResponseQuery) (*ResponsePage, error) {
	q.Page, q.Limit = repository.NormalizePage(q.Page, q.Limit)

	items, total, err := s.Repos.Response.List(ctx, q)
	if err != nil {
		return nil, err
	}
	counts, err := s.Repos.Response.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := recruitment.ResponseStats{
		Pending:     counts[recruitment.StatusPending],
		Approved:    counts[recruitment.StatusAccepted],
		Rejected:    counts[recruitment.StatusRejected],
		Shortlisted: counts[recruitment.StatusWaitlisted],
	}
	for _, n := range counts {
		stats.Total += n
	}

	if items == nil {
		items = []recruitment.Response{}
	}
	return &ResponsePage{Items: items, Total: total, Page: q.Page, Limit: q.Limit, Stats: stats}, nil
}
