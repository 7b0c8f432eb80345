package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamilsociety/tls-platform/internal/apierrors"
	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/internal/notify"
	notifymock "github.com/tamilsociety/tls-platform/internal/notify/mock"
	"github.com/tamilsociety/tls-platform/internal/repository"
	storagemock "github.com/tamilsociety/tls-platform/internal/storage/mock"
	"gorm.io/gorm"
)

func TestRecruitmentScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storagemock.NewMockAttachmentStore(ctrl)
	store.EXPECT().RemovePrefix(gomock.Any(), gomock.Any()).Return(0, nil)

	svc, repos, clock := newTestServices(t, Deps{Attachments: store})
	ctx := context.Background()

	in := formInput("F1")
	in.MaxResponses = intPtr(2)
	in.StartDate = at(clock.now.Add(-24 * time.Hour))
	in.EndDate = at(clock.now.Add(24 * time.Hour))
	f := mustCreateForm(t, svc, in)

	a, err := svc.Response.Submit(ctx, submission(f.ID, "A"))
	require.NoError(t, err)
	assert.Equal(t, 1, storedCount(t, repos, f.ID))

	_, err = svc.Response.Submit(ctx, submission(f.ID, "B"))
	require.NoError(t, err)
	assert.Equal(t, 2, storedCount(t, repos, f.ID))

	_, err = svc.Response.Submit(ctx, submission(f.ID, "C"))
	require.Error(t, err)
	assert.Equal(t, "form full", err.Error())
	assert.True(t, apierrors.IsKind(err, apierrors.KindState))

	require.NoError(t, svc.Response.Delete(ctx, admin, a.ID))
	assert.Equal(t, 1, storedCount(t, repos, f.ID))

	_, err = svc.Response.Submit(ctx, recruitment.SubmitResponseDTO{FormID: f.ID, Answers: recruitment.Answers{}})
	require.Error(t, err)
	assert.Equal(t, "Required field 'name' is missing", err.Error())
	assert.True(t, apierrors.IsKind(err, apierrors.KindValidation))
	assert.Equal(t, 1, storedCount(t, repos, f.ID))
}

func TestSubmit_StoresPendingResponse(t *testing.T) {
	svc, _, clock := newTestServices(t, Deps{})
	ctx := context.Background()

	in := formInput("Crew call")
	in.Role = "participants"
	f := mustCreateForm(t, svc, in)

	resp, err := svc.Response.Submit(ctx, recruitment.SubmitResponseDTO{
		FormID:         f.ID,
		ApplicantName:  "  <b>Kavya</b> ",
		ApplicantEmail: "Kavya@Example.org",
		Answers:        recruitment.Answers{"name": "Kavya <script>x</script>"},
		UserRef:        uintPtr(42),
	})
	require.NoError(t, err)

	got, err := svc.Response.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kavya", got.ApplicantName)
	assert.Equal(t, "kavya@example.org", got.ApplicantEmail)
	assert.Equal(t, "participant", got.RoleApplied)
	assert.Equal(t, recruitment.StatusPending, got.Status)
	assert.Equal(t, recruitment.PriorityMedium, got.Priority)
	assert.NotContains(t, got.Answers["name"], "<script>")
	require.NotNil(t, got.UserRef)
	assert.EqualValues(t, 42, *got.UserRef)
	assert.WithinDuration(t, clock.now, got.SubmittedAt, time.Second)
}

func TestSubmit_CapacityIsExact(t *testing.T) {
	svc, repos, _ := newTestServices(t, Deps{})
	ctx := context.Background()

	in := formInput("Limited")
	in.MaxResponses = intPtr(3)
	f := mustCreateForm(t, svc, in)

	for i := 0; i < 3; i++ {
		_, err := svc.Response.Submit(ctx, submission(f.ID, "applicant"))
		require.NoError(t, err, "submission %d", i+1)
	}
	for i := 0; i < 2; i++ {
		_, err := svc.Response.Submit(ctx, submission(f.ID, "late"))
		assert.ErrorIs(t, err, ErrFormFull)
		assert.True(t, apierrors.IsKind(err, apierrors.KindState))
	}
	assert.Equal(t, 3, storedCount(t, repos, f.ID))
	assert.Equal(t, 3, liveCount(t, repos, f.ID))
}

func TestSubmit_RespectsStoredCounter(t *testing.T) {
	svc, repos, _ := newTestServices(t, Deps{})
	ctx := context.Background()

	in := formInput("Limited")
	in.MaxResponses = intPtr(1)
	f := mustCreateForm(t, svc, in)

	ok, err := repos.Form.IncrementIfBelowCapacity(ctx, f.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Response.Submit(ctx, submission(f.ID, "late"))
	assert.ErrorIs(t, err, ErrFormFull)
	assert.Equal(t, 0, liveCount(t, repos, f.ID))
}

// deleteBeforeIncrement removes the form just before the counter is bumped,
// as a concurrent admin delete would.
type deleteBeforeIncrement struct {
	repository.RecruitmentFormRepo
}

func (r deleteBeforeIncrement) IncrementIfBelowCapacity(ctx context.Context, id string) (bool, error) {
	if err := r.RecruitmentFormRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return r.RecruitmentFormRepo.IncrementIfBelowCapacity(ctx, id)
}

func (r deleteBeforeIncrement) WithTx(tx *gorm.DB) repository.RecruitmentFormRepo {
	return deleteBeforeIncrement{RecruitmentFormRepo: r.RecruitmentFormRepo.WithTx(tx)}
}

func TestSubmit_FormDeletedAfterChecksIsNotFound(t *testing.T) {
	svc, repos, _ := newTestServices(t, Deps{})
	ctx := context.Background()

	f := mustCreateForm(t, svc, formInput("Crew call"))
	repos.Form = deleteBeforeIncrement{RecruitmentFormRepo: repos.Form}

	_, err := svc.Response.Submit(ctx, submission(f.ID, "Anbu"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.True(t, apierrors.IsKind(err, apierrors.KindNotFound))
	assert.NotErrorIs(t, err, ErrFormFull)

	// The transaction rolled back, so the form is still there and empty.
	assert.Equal(t, 0, storedCount(t, repos, f.ID))
	assert.Equal(t, 0, liveCount(t, repos, f.ID))
}

func TestSubmit_Window(t *testing.T) {
	svc, _, clock := newTestServices(t, Deps{})
	ctx := context.Background()

	in := formInput("Festival crew")
	in.StartDate, in.EndDate = at(day(5, 10)), at(day(5, 20))
	f := mustCreateForm(t, svc, in)

	clock.now = day(5, 9)
	_, err := svc.Response.Submit(ctx, submission(f.ID, "early"))
	assert.ErrorIs(t, err, ErrFormNotOpen)
	assert.True(t, apierrors.IsKind(err, apierrors.KindState))

	clock.now = day(5, 15)
	_, err = svc.Response.Submit(ctx, submission(f.ID, "on time"))
	require.NoError(t, err)

	clock.now = day(5, 20).Add(time.Hour)
	_, err = svc.Response.Submit(ctx, submission(f.ID, "late"))
	assert.ErrorIs(t, err, ErrFormClosed)
	assert.True(t, apierrors.IsKind(err, apierrors.KindState))
}

func TestSubmit_Preconditions(t *testing.T) {
	svc, _, _ := newTestServices(t, Deps{})
	ctx := context.Background()

	_, err := svc.Response.Submit(ctx, submission("missing", "A"))
	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.True(t, apierrors.IsKind(err, apierrors.KindNotFound))

	off := false
	in := formInput("Closed call")
	in.IsActive = &off
	in.MaxResponses = intPtr(1)
	f := mustCreateForm(t, svc, in)

	_, err = svc.Response.Submit(ctx, submission(f.ID, "A"))
	assert.ErrorIs(t, err, ErrFormInactive)
	assert.Equal(t, "form is not active", err.Error())
}

func TestSubmit_RequiredAndTypedFields(t *testing.T) {
	svc, repos, _ := newTestServices(t, Deps{})
	ctx := context.Background()

	f := mustCreateForm(t, svc, formInput("Crew call",
		nameField(),
		recruitment.FormField{ID: "phone", Label: bilingual.Text{En: "Phone", Ta: "தொலைபேசி"}, Type: recruitment.FieldPhone, Required: true},
		recruitment.FormField{ID: "email", Label: bilingual.FromString("Email"), Type: recruitment.FieldEmail},
		recruitment.FormField{ID: "shift", Label: bilingual.FromString("Shift"), Type: recruitment.FieldSelect, Options: []bilingual.Text{bilingual.FromString("Morning"), bilingual.FromString("Evening")}},
	))

	_, err := svc.Response.Submit(ctx, recruitment.SubmitResponseDTO{FormID: f.ID, Answers: recruitment.Answers{"name": "Anbu", "phone": "  "}})
	require.Error(t, err)
	assert.Equal(t, "Required field 'Phone' is missing", err.Error())

	_, err = svc.Response.Submit(ctx, recruitment.SubmitResponseDTO{FormID: f.ID, Answers: recruitment.Answers{"name": "Anbu", "phone": "+94 77 123 4567", "email": "nope"}})
	require.Error(t, err)
	assert.Equal(t, "Field 'Email' must be a valid email address", err.Error())

	_, err = svc.Response.Submit(ctx, recruitment.SubmitResponseDTO{FormID: f.ID, Answers: recruitment.Answers{"name": "Anbu", "phone": "+94 77 123 4567", "shift": "Night"}})
	require.Error(t, err)
	assert.True(t, apierrors.IsKind(err, apierrors.KindValidation))

	resp, err := svc.Response.Submit(ctx, recruitment.SubmitResponseDTO{FormID: f.ID, Answers: recruitment.Answers{"name": "Anbu", "phone": "+94 77 123 4567"}})
	require.NoError(t, err)
	assert.Equal(t, "Anbu", resp.ApplicantName)
	assert.Equal(t, 1, storedCount(t, repos, f.ID))
}

func TestSubmit_ApplicantDetails(t *testing.T) {
	svc, _, _ := newTestServices(t, Deps{})
	ctx := context.Background()

	f := mustCreateForm(t, svc, formInput("Crew call", recruitment.FormField{ID: "fullName", Label: bilingual.FromString("Full name")}))

	_, err := svc.Response.Submit(ctx, recruitment.SubmitResponseDTO{FormID: f.ID, Answers: recruitment.Answers{}})
	assert.True(t, apierrors.IsKind(err, apierrors.KindValidation))

	_, err = svc.Response.Submit(ctx, recruitment.SubmitResponseDTO{FormID: f.ID, ApplicantName: "Anbu", ApplicantEmail: "not-an-email"})
	assert.True(t, apierrors.IsKind(err, apierrors.KindValidation))

	resp, err := svc.Response.Submit(ctx, recruitment.SubmitResponseDTO{FormID: f.ID, Answers: recruitment.Answers{"fullName": "Bala", "email": "bala@example.org"}})
	require.NoError(t, err)
	assert.Equal(t, "Bala", resp.ApplicantName)
	assert.Equal(t, "bala@example.org", resp.ApplicantEmail)
}

func TestSubmitForProject(t *testing.T) {
	svc, _, _ := newTestServices(t, Deps{})
	ctx := context.Background()
	p := mustCreateProject(t, svc, "Pongal festival")

	_, err := svc.Response.SubmitForProject(ctx, "missing", submission("", "A"))
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.Response.SubmitForProject(ctx, p.ID, submission("", "A"))
	assert.ErrorIs(t, err, ErrFormNotFound)

	f, err := svc.Form.CreateForProject(ctx, admin, p.ID, formInput("Crew call"))
	require.NoError(t, err)

	resp, err := svc.Response.SubmitForProject(ctx, p.ID, submission("ignored", "A"))
	require.NoError(t, err)
	assert.Equal(t, f.ID, resp.FormID)
}

func TestCounterMatchesResponsesAfterSubmitsAndDeletes(t *testing.T) {
	svc, repos, _ := newTestServices(t, Deps{})
	ctx := context.Background()

	one := mustCreateForm(t, svc, formInput("One"))
	two := mustCreateForm(t, svc, formInput("Two"))

	var ids []string
	for i := 0; i < 6; i++ {
		formID := one.ID
		if i%3 == 0 {
			formID = two.ID
		}
		resp, err := svc.Response.Submit(ctx, submission(formID, "applicant"))
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}
	for _, id := range []string{ids[0], ids[2], ids[5]} {
		require.NoError(t, svc.Response.Delete(ctx, admin, id))
	}
	assert.ErrorIs(t, svc.Response.Delete(ctx, admin, ids[0]), ErrResponseNotFound)

	for _, f := range []*recruitment.Form{one, two} {
		assert.Equal(t, liveCount(t, repos, f.ID), storedCount(t, repos, f.ID), f.Title.En)
	}
}

func TestDelete_OrphanSkipsDecrement(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storagemock.NewMockAttachmentStore(ctrl)
	svc, repos, _ := newTestServices(t, Deps{Attachments: store})
	ctx := context.Background()

	orphan := &recruitment.Response{FormID: "gone", ApplicantName: "Anbu", Status: recruitment.StatusPending, Priority: recruitment.PriorityLow, SubmittedAt: time.Now()}
	require.NoError(t, repos.Response.Create(ctx, orphan))

	store.EXPECT().RemovePrefix(gomock.Any(), "recruitment/gone/"+orphan.ID+"/").Return(0, errors.New("denied"))
	require.NoError(t, svc.Response.Delete(ctx, admin, orphan.ID))

	_, err := svc.Response.Get(ctx, orphan.ID)
	assert.ErrorIs(t, err, ErrResponseNotFound)
}

func TestReview_RestampsAndNotifiesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := notifymock.NewMockNotifier(ctrl)
	svc, repos, clock := newTestServices(t, Deps{Notifier: notifier})
	ctx := context.Background()

	f := mustCreateForm(t, svc, formInput("Crew call"))
	in := submission(f.ID, "Anbu")
	in.UserRef = uintPtr(7)
	resp, err := svc.Response.Submit(ctx, in)
	require.NoError(t, err)

	notifier.EXPECT().RecruitmentAccepted(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a notify.Acceptance) error {
		assert.Equal(t, resp.ID, a.ResponseID)
		assert.Equal(t, "Crew call", a.FormTitle.En)
		require.NotNil(t, a.UserID)
		assert.EqualValues(t, 7, *a.UserID)
		assert.False(t, a.SendEmail)
		return nil
	}).Times(1)

	reviewer := Actor{UserID: 3}
	clock.Advance(time.Hour)
	first, err := svc.Response.Review(ctx, reviewer, recruitment.ReviewResponseDTO{ID: resp.ID, Status: strPtr("approved")})
	require.NoError(t, err)
	assert.Equal(t, recruitment.StatusAccepted, first.Status)
	require.NotNil(t, first.ReviewedAt)
	assert.True(t, first.ReviewedAt.Equal(clock.now))

	clock.Advance(time.Hour)
	second, err := svc.Response.Review(ctx, reviewer, recruitment.ReviewResponseDTO{ID: resp.ID, Status: strPtr("accepted")})
	require.NoError(t, err)
	assert.True(t, second.ReviewedAt.Equal(clock.now))

	stored, err := repos.Response.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ReviewedAt)
	assert.WithinDuration(t, clock.now, *stored.ReviewedAt, time.Second)
	require.NotNil(t, stored.ReviewedBy)
	assert.EqualValues(t, 3, *stored.ReviewedBy)
}

func TestReview_ReacceptAfterRejectionNotifiesAgain(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := notifymock.NewMockNotifier(ctrl)
	svc, _, _ := newTestServices(t, Deps{Notifier: notifier})
	ctx := context.Background()

	f := mustCreateForm(t, svc, formInput("Crew call"))
	in := submission(f.ID, "Anbu")
	in.UserRef = uintPtr(7)
	resp, err := svc.Response.Submit(ctx, in)
	require.NoError(t, err)

	notifier.EXPECT().RecruitmentAccepted(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	for _, status := range []string{"accepted", "rejected", "approved"} {
		_, err := svc.Response.Review(ctx, admin, recruitment.ReviewResponseDTO{ID: resp.ID, Status: strPtr(status)})
		require.NoError(t, err)
	}
}

func TestReview_NotificationTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := notifymock.NewMockNotifier(ctrl)
	svc, _, _ := newTestServices(t, Deps{Notifier: notifier})
	ctx := context.Background()

	anonymousForm := mustCreateForm(t, svc, formInput("No email"))
	resp, err := svc.Response.Submit(ctx, submission(anonymousForm.ID, "Anbu"))
	require.NoError(t, err)
	// No account and no email: nothing to deliver, so the mock sees no call.
	_, err = svc.Response.Review(ctx, admin, recruitment.ReviewResponseDTO{ID: resp.ID, Status: strPtr("accepted")})
	require.NoError(t, err)

	on := true
	in := formInput("With email")
	in.EmailNotification = &on
	emailForm := mustCreateForm(t, svc, in)
	resp, err = svc.Response.Submit(ctx, recruitment.SubmitResponseDTO{FormID: emailForm.ID, ApplicantEmail: "bala@example.org", Answers: recruitment.Answers{"name": "Bala"}})
	require.NoError(t, err)

	notifier.EXPECT().RecruitmentAccepted(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a notify.Acceptance) error {
		assert.Nil(t, a.UserID)
		assert.True(t, a.SendEmail)
		assert.Equal(t, "bala@example.org", a.ApplicantEmail)
		return errors.New("smtp down")
	})
	reviewed, err := svc.Response.Review(ctx, admin, recruitment.ReviewResponseDTO{ID: resp.ID, Status: strPtr("accepted")})
	require.NoError(t, err)
	assert.Equal(t, recruitment.StatusAccepted, reviewed.Status)
}

func TestReview_Validation(t *testing.T) {
	svc, _, _ := newTestServices(t, Deps{})
	ctx := context.Background()

	_, err := svc.Response.Review(ctx, admin, recruitment.ReviewResponseDTO{ID: "missing"})
	assert.ErrorIs(t, err, ErrResponseNotFound)

	f := mustCreateForm(t, svc, formInput("Crew call"))
	resp, err := svc.Response.Submit(ctx, submission(f.ID, "Anbu"))
	require.NoError(t, err)

	for _, in := range []recruitment.ReviewResponseDTO{
		{ID: resp.ID, Status: strPtr("hired")},
		{ID: resp.ID, Rating: intPtr(6)},
		{ID: resp.ID, Rating: intPtr(0)},
		{ID: resp.ID, Priority: strPtr("whenever")},
	} {
		_, err := svc.Response.Review(ctx, admin, in)
		assert.True(t, apierrors.IsKind(err, apierrors.KindValidation), "%+v", in)
	}

	updated, err := svc.Response.Review(ctx, admin, recruitment.ReviewResponseDTO{
		ID:          resp.ID,
		Rating:      intPtr(4),
		Priority:    strPtr("HIGH"),
		ReviewNotes: strPtr("<i>strong</i> candidate"),
	})
	require.NoError(t, err)
	assert.Equal(t, recruitment.StatusPending, updated.Status)
	assert.Equal(t, recruitment.PriorityHigh, updated.Priority)
	assert.Equal(t, "strong candidate", updated.ReviewNotes)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4, *updated.Rating)
	assert.NotNil(t, updated.ReviewedAt)
}

func TestResponseList_StatsAreGlobal(t *testing.T) {
	svc, _, _ := newTestServices(t, Deps{})
	ctx := context.Background()

	one := mustCreateForm(t, svc, formInput("One"))
	two := mustCreateForm(t, svc, formInput("Two"))

	var ids []string
	for _, formID := range []string{one.ID, one.ID, two.ID, two.ID} {
		resp, err := svc.Response.Submit(ctx, submission(formID, "applicant"))
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}
	for i, status := range []string{"approved", "rejected", "shortlisted"} {
		_, err := svc.Response.Review(ctx, admin, recruitment.ReviewResponseDTO{ID: ids[i+1], Status: strPtr(status)})
		require.NoError(t, err)
	}

	page, err := svc.Response.List(ctx, repository.ResponseQuery{FormID: one.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, recruitment.ResponseStats{Total: 4, Pending: 1, Approved: 1, Rejected: 1, Shortlisted: 1}, page.Stats)
}
