package community

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Redestrov/CyberMaker-site/internal/metrics"
	"github.com/Redestrov/CyberMaker-site/internal/model"
)

const (
	DefaultFeedSize = 50
	MaxFeedSize     = 200
)

type Store interface {
	CreateCommunityPost(ctx context.Context, post *model.CommunityPost, award int64) (model.PostID, error)
	CommunityFeed(ctx context.Context, limit int) ([]*model.CommunityPost, error)
}

type Media interface {
	Save(prefix, raw string) (*string, error)
	Remove(ref *string)
}

type service struct {
	store Store
	media Media
	award int64
}

func New(store Store, media Media, award int64) *service {
	return &service{store, media, award}
}

func (s *service) Post(ctx context.Context, userID model.UserID, params *model.CreateCommunityPostParams) (model.PostID, error) {
	title := strings.TrimSpace(params.Title)
	text := strings.TrimSpace(params.Text)
	if userID <= 0 || title == "" || text == "" {
		return 0, model.ErrorMissingFields
	}

	image, err := s.media.Save("community", params.Image)
	if err != nil {
		return 0, fmt.Errorf("saving post image: %w", err)
	}

	id, err := s.store.CreateCommunityPost(ctx, &model.CommunityPost{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Title:     title,
		Text:      text,
		Image:     image,
	}, s.award)
	if err != nil {
		s.media.Remove(image)
		if errors.Is(err, model.ErrorUserNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("creating community post: %w", err)
	}
	metrics.AwardPoints(metrics.EventCommunityPost, s.award)
	return id, nil
}

func (s *service) Feed(ctx context.Context, limit int) ([]*model.CommunityPost, error) {
	if limit <= 0 {
		limit = DefaultFeedSize
	}
	if limit > MaxFeedSize {
		limit = MaxFeedSize
	}
	return s.store.CommunityFeed(ctx, limit)
}
