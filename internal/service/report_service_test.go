package service

import (
	"context"
	"testing"
	"time"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	svc     ReportService
	reports *fakeReportRepo
	posts   *fakePostRepo
	audit   *fakeAudit
	post    *model.Post
}

func newReportFixture() *reportFixture {
	post := &model.Post{ID: uuid.New(), UserID: uuid.New(), CreatedAt: time.Now()}
	posts := &fakePostRepo{posts: []*model.Post{post}}
	reports := newFakeReportRepo()
	audit := &fakeAudit{}

	return &reportFixture{
		svc:     NewReportService(reports, posts, newFakeCommentRepo(), newFakeUserRepo(), audit),
		reports: reports,
		posts:   posts,
		audit:   audit,
		post:    post,
	}
}

func TestCreateReportStartsPending(t *testing.T) {
	f := newReportFixture()
	reporter := uuid.New()

	report, err := f.svc.Create(context.Background(), reporter, dto.CreateReportRequest{
		TargetType: model.ReportTargetPost,
		TargetID:   f.post.ID.String(),
		Reason:     "spam",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReportPending, report.Status)
	assert.Equal(t, reporter, report.ReporterID)
}

func TestCreateReportRejectsMissingTarget(t *testing.T) {
	f := newReportFixture()

	_, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateReportRequest{
		TargetType: model.ReportTargetPost,
		TargetID:   uuid.NewString(),
		Reason:     "spam",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.MapErrorToStatus(err))
}

func TestCreateReportRejectsUnknownReason(t *testing.T) {
	f := newReportFixture()

	_, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateReportRequest{
		TargetType: model.ReportTargetPost,
		TargetID:   f.post.ID.String(),
		Reason:     "boring",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
}

func TestResolveReportIsOneWay(t *testing.T) {
	f := newReportFixture()
	admin := uuid.New()

	report, err := f.svc.Create(context.Background(), uuid.New(), dto.CreateReportRequest{
		TargetType: model.ReportTargetPost,
		TargetID:   f.post.ID.String(),
		Reason:     "harassment",
	})
	require.NoError(t, err)

	note := "تمت المراجعة"
	resolved, err := f.svc.Resolve(context.Background(), admin, report.ID, dto.ResolveReportRequest{
		Status:         model.ReportResolved,
		ResolutionNote: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReportResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedByID)
	assert.Equal(t, admin, *resolved.ResolvedByID)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, []string{"report.resolved"}, f.audit.actions)

	// A second transition, even to a different terminal status, conflicts
	// and leaves the first resolution untouched.
	_, err = f.svc.Resolve(context.Background(), admin, report.ID, dto.ResolveReportRequest{
		Status: model.ReportDismissed,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.MapErrorToStatus(err))
	assert.Equal(t, model.ReportResolved, f.reports.reports[report.ID].Status)
	assert.Equal(t, int64(1), f.reports.resolved)
}

func TestResolveMissingReportIsNotFound(t *testing.T) {
	f := newReportFixture()

	_, err := f.svc.Resolve(context.Background(), uuid.New(), uuid.New(), dto.ResolveReportRequest{
		Status: model.ReportDismissed,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.MapErrorToStatus(err))
}
