package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamilsociety/tls-platform/internal/application"
	"github.com/tamilsociety/tls-platform/internal/domain/audit"
	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/internal/testutils"
)

func newScheduler(t *testing.T) (*Scheduler, *repository.Repos) {
	t.Helper()
	repos := repository.NewRepositories(testutils.NewTestDB(t))
	return New(application.New(repos, application.Deps{}), 30), repos
}

func TestReconcileCorrectsDriftedCounter(t *testing.T) {
	ctx := context.Background()
	s, repos := newScheduler(t)

	f := &recruitment.Form{
		Title:    bilingual.FromString("Stage crew"),
		Role:     recruitment.RoleVolunteer,
		Fields:   []recruitment.FormField{{ID: "name", Label: bilingual.FromString("Name"), Type: recruitment.FieldText}},
		IsActive: true,
	}
	require.NoError(t, repos.Form.Create(ctx, f))
	require.NoError(t, repos.Form.SetResponseCount(ctx, f.ID, 4))

	s.Reconcile(ctx)

	got, err := repos.Form.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentResponses)
}

func TestCleanupAuditLogsHonoursRetention(t *testing.T) {
	ctx := context.Background()
	s, repos := newScheduler(t)

	require.NoError(t, repos.Audit.CreateAuditLog(ctx, &audit.AuditLog{
		UserID: 1, Action: audit.ActionCreate, ResourceType: "recruitment_form", ResourceID: "old",
		CreatedAt: time.Now().AddDate(0, 0, -45),
	}))
	require.NoError(t, repos.Audit.CreateAuditLog(ctx, &audit.AuditLog{
		UserID: 1, Action: audit.ActionCreate, ResourceType: "recruitment_form", ResourceID: "new",
	}))

	s.CleanupAuditLogs(ctx)

	logs, err := repos.Audit.GetAuditLogs(ctx, repository.AuditQueryParams{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "new", logs[0].ResourceID)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, _ := newScheduler(t)
	assert.Error(t, s.Start("every so often"))
}
