package service

import (
	"context"
	"testing"
	"time"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	svc           CommentService
	posts         *fakePostRepo
	comments      *fakeCommentRepo
	notifications *fakeNotifications
	postAuthor    uuid.UUID
	post          *model.Post
}

func newCommentFixture() *commentFixture {
	postAuthor := uuid.New()
	post := &model.Post{
		ID:        uuid.New(),
		UserID:    postAuthor,
		User:      model.User{ID: postAuthor, DisplayName: "صاحب المنشور"},
		Body:      "منشور",
		CreatedAt: time.Now(),
	}

	posts := &fakePostRepo{posts: []*model.Post{post}}
	comments := newFakeCommentRepo()
	notifications := &fakeNotifications{}

	return &commentFixture{
		svc:           NewCommentService(comments, posts, notifications),
		posts:         posts,
		comments:      comments,
		notifications: notifications,
		postAuthor:    postAuthor,
		post:          post,
	}
}

func TestCreateCommentNotifiesPostAuthor(t *testing.T) {
	f := newCommentFixture()
	commenter := uuid.New()

	_, err := f.svc.Create(context.Background(), commenter, f.post.ID, dto.CreateCommentRequest{Body: "تعليق"})
	require.NoError(t, err)

	require.Len(t, f.notifications.pushed, 1)
	n := f.notifications.pushed[0]
	assert.Equal(t, f.postAuthor, n.RecipientID)
	assert.Equal(t, commenter, n.ActorID)
	assert.Equal(t, model.NotificationNewComment, n.Type)
	require.NotNil(t, n.PostID)
	assert.Equal(t, f.post.ID, *n.PostID)
}

func TestCreateCommentOnOwnPostSkipsNotification(t *testing.T) {
	f := newCommentFixture()

	_, err := f.svc.Create(context.Background(), f.postAuthor, f.post.ID, dto.CreateCommentRequest{Body: "تعليق"})
	require.NoError(t, err)

	assert.Empty(t, f.notifications.pushed)
}

func TestReplyNotifiesPostAuthorAndParentAuthor(t *testing.T) {
	f := newCommentFixture()
	parentAuthor := uuid.New()
	replier := uuid.New()

	parent := &model.Comment{
		PostID: f.post.ID,
		UserID: parentAuthor,
		Body:   "تعليق أصلي",
	}
	require.NoError(t, f.comments.Create(context.Background(), parent))

	parentID := parent.ID.String()
	_, err := f.svc.Create(context.Background(), replier, f.post.ID, dto.CreateCommentRequest{
		Body:     "رد",
		ParentID: &parentID,
	})
	require.NoError(t, err)

	require.Len(t, f.notifications.pushed, 2)
	assert.Equal(t, f.postAuthor, f.notifications.pushed[0].RecipientID)
	assert.Equal(t, model.NotificationNewComment, f.notifications.pushed[0].Type)
	assert.Equal(t, parentAuthor, f.notifications.pushed[1].RecipientID)
	assert.Equal(t, model.NotificationCommentReply, f.notifications.pushed[1].Type)
}

func TestReplyToPostAuthorCollapsesToSingleReplyNotification(t *testing.T) {
	f := newCommentFixture()
	replier := uuid.New()

	// The parent comment belongs to the post author, so the two
	// recipient roles name the same user.
	parent := &model.Comment{
		PostID: f.post.ID,
		UserID: f.postAuthor,
		Body:   "تعليق من صاحب المنشور",
	}
	require.NoError(t, f.comments.Create(context.Background(), parent))

	parentID := parent.ID.String()
	_, err := f.svc.Create(context.Background(), replier, f.post.ID, dto.CreateCommentRequest{
		Body:     "رد",
		ParentID: &parentID,
	})
	require.NoError(t, err)

	require.Len(t, f.notifications.pushed, 1)
	assert.Equal(t, f.postAuthor, f.notifications.pushed[0].RecipientID)
	assert.Equal(t, model.NotificationCommentReply, f.notifications.pushed[0].Type)
}

func TestSelfReplyOnOwnPostNotifiesNobody(t *testing.T) {
	f := newCommentFixture()

	parent := &model.Comment{
		PostID: f.post.ID,
		UserID: f.postAuthor,
		Body:   "تعليق",
	}
	require.NoError(t, f.comments.Create(context.Background(), parent))

	parentID := parent.ID.String()
	_, err := f.svc.Create(context.Background(), f.postAuthor, f.post.ID, dto.CreateCommentRequest{
		Body:     "رد على نفسي",
		ParentID: &parentID,
	})
	require.NoError(t, err)

	assert.Empty(t, f.notifications.pushed)
}

func TestCreateCommentOnMissingPostFails(t *testing.T) {
	f := newCommentFixture()

	_, err := f.svc.Create(context.Background(), uuid.New(), uuid.New(), dto.CreateCommentRequest{Body: "تعليق"})
	require.Error(t, err)
	assert.Empty(t, f.notifications.pushed)
}

func TestCreateCommentRejectsParentFromAnotherPost(t *testing.T) {
	f := newCommentFixture()

	parent := &model.Comment{
		PostID: uuid.New(),
		UserID: uuid.New(),
		Body:   "تعليق على منشور آخر",
	}
	require.NoError(t, f.comments.Create(context.Background(), parent))

	parentID := parent.ID.String()
	_, err := f.svc.Create(context.Background(), uuid.New(), f.post.ID, dto.CreateCommentRequest{
		Body:     "رد",
		ParentID: &parentID,
	})
	require.Error(t, err)
}

func TestCreateCommentSanitizesMarkup(t *testing.T) {
	f := newCommentFixture()

	comment, err := f.svc.Create(context.Background(), uuid.New(), f.post.ID, dto.CreateCommentRequest{
		Body: `مرحبا <script>alert("x")</script><b>عزيزي</b>`,
	})
	require.NoError(t, err)
	assert.NotContains(t, comment.Body, "<script>")
	assert.NotContains(t, comment.Body, "<b>")
	assert.Contains(t, comment.Body, "مرحبا")
}

func TestUpdateCommentRejectsNonOwner(t *testing.T) {
	f := newCommentFixture()
	owner := uuid.New()

	comment, err := f.svc.Create(context.Background(), owner, f.post.ID, dto.CreateCommentRequest{Body: "تعليق"})
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), uuid.New(), comment.ID, dto.UpdateCommentRequest{Body: "تعديل"})
	require.Error(t, err)

	updated, err := f.svc.Update(context.Background(), owner, comment.ID, dto.UpdateCommentRequest{Body: "تعديل"})
	require.NoError(t, err)
	assert.Equal(t, "تعديل", updated.Body)
}
