package service

import (
	"context"
	"testing"
	"time"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPosts(n int) []*model.Post {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]*model.Post, n)
	for i := 0; i < n; i++ {
		// Newest first, one second apart.
		posts[i] = &model.Post{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			User:      model.User{ID: uuid.New(), DisplayName: "عضو"},
			Body:      "منشور",
			CreatedAt: base.Add(-time.Duration(i) * time.Second),
		}
	}
	return posts
}

func TestGetFeedWalksEveryPostExactlyOnce(t *testing.T) {
	repo := &fakePostRepo{posts: seedPosts(47)}
	svc := NewFeedService(repo)

	const pageSize = 10
	seen := make(map[uuid.UUID]int)
	cursor := ""
	pages := 0

	for {
		query := dto.FeedQuery{Limit: pageSize, Cursor: cursor}
		page, err := svc.GetFeed(context.Background(), query)
		require.NoError(t, err)
		pages++

		for _, item := range page.Items {
			seen[item.ID]++
		}

		if page.NextCursor == nil {
			assert.LessOrEqual(t, len(page.Items), pageSize)
			break
		}
		assert.Len(t, page.Items, pageSize)
		cursor = page.NextCursor.String()
	}

	// ceil(47/10) pages, every post exactly once.
	assert.Equal(t, 5, pages)
	assert.Len(t, seen, 47)
	for id, count := range seen {
		assert.Equalf(t, 1, count, "post %s appeared %d times", id, count)
	}
}

func TestGetFeedExactMultipleEndsWithEmptyNextCursor(t *testing.T) {
	repo := &fakePostRepo{posts: seedPosts(40)}
	svc := NewFeedService(repo)

	cursor := ""
	var lastPage *dto.FeedResponse
	pages := 0
	for {
		page, err := svc.GetFeed(context.Background(), dto.FeedQuery{Limit: 20, Cursor: cursor})
		require.NoError(t, err)
		pages++
		lastPage = page
		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor.String()
	}

	// 40 posts at 20 per page: the second page is full but final.
	assert.Equal(t, 2, pages)
	assert.Len(t, lastPage.Items, 20)
	assert.Nil(t, lastPage.NextCursor)
}

func TestGetFeedClampsLimit(t *testing.T) {
	repo := &fakePostRepo{posts: seedPosts(60)}
	svc := NewFeedService(repo)

	page, err := svc.GetFeed(context.Background(), dto.FeedQuery{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, page.Items, 50)

	page, err = svc.GetFeed(context.Background(), dto.FeedQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 20)
}

func TestGetFeedDeletedCursorYieldsEmptyTerminalPage(t *testing.T) {
	repo := &fakePostRepo{posts: seedPosts(5)}
	svc := NewFeedService(repo)

	page, err := svc.GetFeed(context.Background(), dto.FeedQuery{Cursor: uuid.NewString()})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestGetFeedEmptyFeed(t *testing.T) {
	svc := NewFeedService(&fakePostRepo{})

	page, err := svc.GetFeed(context.Background(), dto.FeedQuery{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestGetFeedAttachesMediaAndReactionCounts(t *testing.T) {
	posts := seedPosts(3)
	repo := &fakePostRepo{
		posts: posts,
		media: []*model.PostMedia{
			{PostID: posts[0].ID, URL: "https://cdn.example/a.webp", Kind: model.MediaImage, Position: 0},
			{PostID: posts[0].ID, URL: "https://cdn.example/b.webp", Kind: model.MediaImage, Position: 1},
		},
		counts: []repository.ReactionCount{
			{SubjectID: posts[0].ID, Kind: "heart", Count: 4},
			{SubjectID: posts[1].ID, Kind: "like", Count: 1},
		},
	}
	svc := NewFeedService(repo)

	page, err := svc.GetFeed(context.Background(), dto.FeedQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	assert.Len(t, page.Items[0].Media, 2)
	assert.Equal(t, int64(4), page.Items[0].Reactions["heart"])
	assert.Equal(t, int64(1), page.Items[1].Reactions["like"])

	// Posts without media or reactions still serialize as empty
	// collections, not null.
	assert.NotNil(t, page.Items[2].Media)
	assert.NotNil(t, page.Items[2].Reactions)
	assert.Empty(t, page.Items[2].Reactions)
}
