package service

import (
	"context"
	"time"

	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hand-written fakes backed by in-memory maps. Each test seeds only the
// state it needs; unused interface methods are inherited from the
// embedded interface and panic if a test reaches them unexpectedly.

type fakePostRepo struct {
	repository.PostRepository

	posts  []*model.Post
	media  []*model.PostMedia
	counts []repository.ReactionCount

	listCalls int
}

func (f *fakePostRepo) byID(id uuid.UUID) *model.Post {
	for _, p := range f.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Post, error) {
	if p := f.byID(id); p != nil {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePostRepo) FindCreatedAt(_ context.Context, id uuid.UUID) (time.Time, error) {
	if p := f.byID(id); p != nil {
		return p.CreatedAt, nil
	}
	return time.Time{}, gorm.ErrRecordNotFound
}

func (f *fakePostRepo) ListBefore(_ context.Context, before *time.Time, limit int) ([]*model.Post, error) {
	f.listCalls++

	// Posts are seeded newest first, matching the repository ordering.
	var out []*model.Post
	for _, p := range f.posts {
		if before != nil && !p.CreatedAt.Before(*before) {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakePostRepo) MediaByPostIDs(_ context.Context, postIDs []uuid.UUID) ([]*model.PostMedia, error) {
	wanted := make(map[uuid.UUID]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}

	var out []*model.PostMedia
	for _, m := range f.media {
		if wanted[m.PostID] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakePostRepo) ReactionCountsByPostIDs(_ context.Context, postIDs []uuid.UUID) ([]repository.ReactionCount, error) {
	wanted := make(map[uuid.UUID]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}

	var out []repository.ReactionCount
	for _, c := range f.counts {
		if wanted[c.SubjectID] {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCommentRepo struct {
	repository.CommentRepository

	comments map[uuid.UUID]*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*model.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comment, error) {
	if c, ok := f.comments[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *model.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.comments, id)
	return nil
}

// fakeNotifications records every batch handed to Push.
type fakeNotifications struct {
	NotificationService

	pushed []*model.Notification
}

func (f *fakeNotifications) Push(_ context.Context, notifications []*model.Notification) error {
	f.pushed = append(f.pushed, notifications...)
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository

	byEmail     map[string]*model.User
	byCollegeID map[string]*model.User
	created     []*model.User
	resetCalls  int
	resetErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:     make(map[string]*model.User),
		byCollegeID: make(map[string]*model.User),
	}
}

func (f *fakeUserRepo) add(user *model.User) {
	f.byEmail[user.Email] = user
	f.byCollegeID[user.CollegeID] = user
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.created = append(f.created, user)
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByCollegeID(_ context.Context, collegeID string) (*model.User, error) {
	if u, ok := f.byCollegeID[collegeID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ResetPassword(_ context.Context, _ uuid.UUID, _ string) (*model.User, error) {
	f.resetCalls++
	if f.resetErr != nil {
		return nil, f.resetErr
	}
	return &model.User{ID: uuid.New()}, nil
}

type fakeVerificationRepo struct {
	verifications map[string]*model.EmailVerification
	resets        []*model.PasswordReset
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{verifications: make(map[string]*model.EmailVerification)}
}

func (f *fakeVerificationRepo) UpsertVerification(_ context.Context, v *model.EmailVerification) error {
	f.verifications[v.Email] = v
	return nil
}

func (f *fakeVerificationRepo) FindVerification(_ context.Context, email string) (*model.EmailVerification, error) {
	if v, ok := f.verifications[email]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVerificationRepo) DeleteVerification(_ context.Context, email string) error {
	delete(f.verifications, email)
	return nil
}

func (f *fakeVerificationRepo) CreateReset(_ context.Context, reset *model.PasswordReset) error {
	f.resets = append(f.resets, reset)
	return nil
}

func (f *fakeVerificationRepo) DeleteExpired(_ context.Context) error {
	return nil
}

type fakeMailer struct {
	codes      []string
	resetLinks []string
	err        error
}

func (f *fakeMailer) SendVerificationCode(_, _, code string) error {
	if f.err != nil {
		return f.err
	}
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeMailer) SendPasswordReset(_, _, resetLink string) error {
	if f.err != nil {
		return f.err
	}
	f.resetLinks = append(f.resetLinks, resetLink)
	return nil
}

type fakeReportRepo struct {
	repository.ReportRepository

	reports  map[uuid.UUID]*model.Report
	resolved int64
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*model.Report)}
}

func (f *fakeReportRepo) Create(_ context.Context, report *model.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	f.reports[report.ID] = report
	return nil
}

func (f *fakeReportRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Report, error) {
	if r, ok := f.reports[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) Resolve(_ context.Context, id uuid.UUID, status string, note, actionTaken *string, resolvedBy uuid.UUID) (int64, error) {
	report, ok := f.reports[id]
	if !ok || report.Status != model.ReportPending {
		return 0, nil
	}

	now := time.Now()
	report.Status = status
	report.ResolutionNote = note
	report.ActionTaken = actionTaken
	report.ResolvedByID = &resolvedBy
	report.ResolvedAt = &now
	f.resolved++
	return 1, nil
}

// fakeAudit satisfies AuditRecorder and remembers every action recorded.
type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, _ uuid.UUID, action, _, _, _ string) {
	f.actions = append(f.actions, action)
}
