package service

import (
	"context"
	"testing"
	"time"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"dufaa.com/communitybackend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReactionRepo struct {
	repository.ReactionRepository

	// Keyed the way the unique index is: one kind per (subject, user).
	kinds map[string]string
}

func reactionKey(subjectType string, subjectID, userID uuid.UUID) string {
	return subjectType + "/" + subjectID.String() + "/" + userID.String()
}

func (f *fakeReactionRepo) Upsert(_ context.Context, r *model.Reaction) error {
	f.kinds[reactionKey(r.SubjectType, r.SubjectID, r.UserID)] = r.Kind
	return nil
}

func (f *fakeReactionRepo) Remove(_ context.Context, subjectType string, subjectID, userID uuid.UUID) error {
	delete(f.kinds, reactionKey(subjectType, subjectID, userID))
	return nil
}

func TestSetReactionReplacesKind(t *testing.T) {
	post := &model.Post{ID: uuid.New(), CreatedAt: time.Now()}
	reactions := &fakeReactionRepo{kinds: make(map[string]string)}
	svc := NewReactionService(reactions, &fakePostRepo{posts: []*model.Post{post}}, newFakeCommentRepo())

	user := uuid.New()
	set := func(kind string) error {
		return svc.Set(context.Background(), user, dto.SetReactionRequest{
			SubjectType: model.SubjectPost,
			SubjectID:   post.ID.String(),
			Kind:        kind,
		})
	}

	require.NoError(t, set("like"))
	require.NoError(t, set("heart"))

	// Still one stored reaction, holding the latest kind.
	require.Len(t, reactions.kinds, 1)
	assert.Equal(t, "heart", reactions.kinds[reactionKey(model.SubjectPost, post.ID, user)])

	require.NoError(t, svc.Remove(context.Background(), user, dto.RemoveReactionRequest{
		SubjectType: model.SubjectPost,
		SubjectID:   post.ID.String(),
	}))
	assert.Empty(t, reactions.kinds)
}

func TestSetReactionRejectsUnknownKind(t *testing.T) {
	reactions := &fakeReactionRepo{kinds: make(map[string]string)}
	svc := NewReactionService(reactions, &fakePostRepo{}, newFakeCommentRepo())

	err := svc.Set(context.Background(), uuid.New(), dto.SetReactionRequest{
		SubjectType: model.SubjectPost,
		SubjectID:   uuid.NewString(),
		Kind:        "meh",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
	assert.Empty(t, reactions.kinds)
}

func TestSetReactionRejectsMissingSubject(t *testing.T) {
	reactions := &fakeReactionRepo{kinds: make(map[string]string)}
	svc := NewReactionService(reactions, &fakePostRepo{}, newFakeCommentRepo())

	err := svc.Set(context.Background(), uuid.New(), dto.SetReactionRequest{
		SubjectType: model.SubjectPost,
		SubjectID:   uuid.NewString(),
		Kind:        "like",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.MapErrorToStatus(err))
}
