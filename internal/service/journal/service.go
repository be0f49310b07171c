package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

type Store interface {
	FindUserByID(ctx context.Context, id model.UserID) (*model.User, error)
	CreateJournalPost(ctx context.Context, post *model.JournalPost) (model.PostID, error)
	ListJournalPosts(ctx context.Context, userID model.UserID) ([]*model.JournalPost, error)
}

type service struct {
	store Store
}

func New(store Store) *service {
	return &service{store}
}

// Post adds an entry to the author's journal. Journal entries earn no points.
func (s *service) Post(ctx context.Context, userID model.UserID, params *model.CreateJournalPostParams) (model.PostID, error) {
	body := strings.TrimSpace(params.Body)
	if body == "" {
		return 0, model.ErrorMissingFields
	}
	if _, err := s.store.FindUserByID(ctx, userID); err != nil {
		return 0, err
	}

	var title *string
	if params.Title != nil {
		if trimmed := strings.TrimSpace(*params.Title); trimmed != "" {
			title = &trimmed
		}
	}

	id, err := s.store.CreateJournalPost(ctx, &model.JournalPost{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Title:     title,
		Body:      body,
	})
	if err != nil {
		return 0, fmt.Errorf("creating journal post: %w", err)
	}
	return id, nil
}

func (s *service) List(ctx context.Context, userID model.UserID) ([]*model.JournalPost, error) {
	return s.store.ListJournalPosts(ctx, userID)
}
