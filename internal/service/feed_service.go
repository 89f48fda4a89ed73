package service

import (
	"context"
	"errors"
	"time"

	"dufaa.com/communitybackend/internal/dto"
	"dufaa.com/communitybackend/internal/model"
	"dufaa.com/communitybackend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	feedDefaultLimit = 20
	feedMaxLimit     = 50
)

// FeedService produces the reverse-chronological, cursor-paginated feed.
// A page costs three queries regardless of its size: posts, media,
// reaction counts.
type FeedService interface {
	GetFeed(ctx context.Context, query dto.FeedQuery) (*dto.FeedResponse, error)
}

type feedService struct {
	posts repository.PostRepository
}

func NewFeedService(posts repository.PostRepository) FeedService {
	return &feedService{posts: posts}
}

func (s *feedService) GetFeed(ctx context.Context, query dto.FeedQuery) (*dto.FeedResponse, error) {
	limit := query.Limit
	if limit < 1 {
		limit = feedDefaultLimit
	}
	if limit > feedMaxLimit {
		limit = feedMaxLimit
	}

	// The cursor is the id of the last post of the previous page; it
	// resolves to that post's creation time. Creation time is the sole
	// ordering key, so posts sharing a timestamp with the boundary are
	// skipped.
	var before *time.Time
	if query.Cursor != "" {
		cursorID, err := uuid.Parse(query.Cursor)
		if err != nil {
			return nil, err
		}

		createdAt, err := s.posts.FindCreatedAt(ctx, cursorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The cursor post was deleted: nothing is older than an
				// unresolvable boundary, so the page is empty and paging ends.
				return &dto.FeedResponse{Items: []dto.FeedItem{}}, nil
			}
			return nil, err
		}
		before = &createdAt
	}

	// One extra row tells us whether another page exists.
	posts, err := s.posts.ListBefore(ctx, before, limit+1)
	if err != nil {
		return nil, err
	}

	var nextCursor *uuid.UUID
	if len(posts) > limit {
		posts = posts[:limit]
		last := posts[len(posts)-1].ID
		nextCursor = &last
	}

	if len(posts) == 0 {
		return &dto.FeedResponse{Items: []dto.FeedItem{}}, nil
	}

	postIDs := make([]uuid.UUID, len(posts))
	for i, post := range posts {
		postIDs[i] = post.ID
	}

	media, err := s.posts.MediaByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	mediaByPost := make(map[uuid.UUID][]model.PostMedia)
	for _, m := range media {
		mediaByPost[m.PostID] = append(mediaByPost[m.PostID], *m)
	}

	counts, err := s.posts.ReactionCountsByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	reactionsByPost := make(map[uuid.UUID]map[string]int64)
	for _, c := range counts {
		if reactionsByPost[c.SubjectID] == nil {
			reactionsByPost[c.SubjectID] = make(map[string]int64)
		}
		reactionsByPost[c.SubjectID][c.Kind] = c.Count
	}

	items := make([]dto.FeedItem, len(posts))
	for i, post := range posts {
		reactions := reactionsByPost[post.ID]
		if reactions == nil {
			reactions = map[string]int64{}
		}
		postMedia := mediaByPost[post.ID]
		if postMedia == nil {
			postMedia = []model.PostMedia{}
		}

		items[i] = dto.FeedItem{
			ID:        post.ID,
			Author:    dto.NewAuthorView(&post.User),
			Body:      post.Body,
			Media:     postMedia,
			Reactions: reactions,
			CreatedAt: post.CreatedAt,
		}
	}

	return &dto.FeedResponse{Items: items, NextCursor: nextCursor}, nil
}
