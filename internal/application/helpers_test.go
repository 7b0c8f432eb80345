package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
	"github.com/tamilsociety/tls-platform/internal/domain/project"
	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/internal/testutils"
)

var admin = Actor{UserID: 1, IP: "127.0.0.1", UserAgent: "test"}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestServices(t *testing.T, deps Deps) (*Services, *repository.Repos, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 5, 7, 12, 0, 0, 0, time.UTC)}
	if deps.Now == nil {
		deps.Now = clock.Now
	}
	repos := repository.NewRepositories(testutils.NewTestDB(t))
	return New(repos, deps), repos, clock
}

func title(s string) *bilingual.Text {
	t := bilingual.FromString(s)
	return &t
}

func at(t time.Time) *recruitment.FlexibleTime {
	return &recruitment.FlexibleTime{Time: t}
}

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC)
}

func nameField() recruitment.FormField {
	return recruitment.FormField{ID: "name", Label: bilingual.FromString("name"), Type: recruitment.FieldText, Required: true}
}

func formInput(name string, fields ...recruitment.FormField) recruitment.CreateFormDTO {
	if len(fields) == 0 {
		fields = []recruitment.FormField{nameField()}
	}
	return recruitment.CreateFormDTO{
		Title:  title(name),
		Role:   "volunteer",
		Fields: fields,
	}
}

func mustCreateForm(t *testing.T, svc *Services, in recruitment.CreateFormDTO) *recruitment.Form {
	t.Helper()
	f, err := svc.Form.Create(context.Background(), admin, in)
	require.NoError(t, err)
	return f
}

func mustCreateProject(t *testing.T, svc *Services, name string) *project.ProjectItem {
	t.Helper()
	p, err := svc.ProjectItem.Create(context.Background(), project.CreateProjectItemDTO{Title: bilingual.FromString(name), Category: "event"})
	require.NoError(t, err)
	return p
}

func submission(formID, name string) recruitment.SubmitResponseDTO {
	return recruitment.SubmitResponseDTO{
		FormID:  formID,
		Answers: recruitment.Answers{"name": name},
	}
}

func storedCount(t *testing.T, repos *repository.Repos, formID string) int {
	t.Helper()
	f, err := repos.Form.GetByID(context.Background(), formID)
	require.NoError(t, err)
	return f.CurrentResponses
}

func liveCount(t *testing.T, repos *repository.Repos, formID string) int {
	t.Helper()
	n, err := repos.Response.CountByForm(context.Background(), formID)
	require.NoError(t, err)
	return int(n)
}

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }
