package profile

import (
	"context"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

type Store interface {
	FindUserByID(ctx context.Context, id model.UserID) (*model.User, error)
	RankOf(ctx context.Context, userID model.UserID) (int64, error)
	ListJournalPosts(ctx context.Context, userID model.UserID) ([]*model.JournalPost, error)
	ListActivities(ctx context.Context, userID model.UserID) ([]*model.Activity, error)
	ListIdeasByUser(ctx context.Context, userID model.UserID) ([]*model.Idea, error)
}

type service struct {
	store Store
}

func New(store Store) *service {
	return &service{store}
}

func (s *service) Get(ctx context.Context, userID model.UserID) (*model.Profile, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rank, err := s.store.RankOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.store.ListJournalPosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	activities, err := s.store.ListActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	ideas, err := s.store.ListIdeasByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.Profile{
		User:         user.Public(),
		Rank:         rank,
		JournalPosts: posts,
		Activities:   activities,
		Ideas:        ideas,
	}, nil
}
