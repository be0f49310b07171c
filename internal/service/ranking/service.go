package ranking

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/gommon/log"

	"github.com/Redestrov/CyberMaker-site/internal/metrics"
	"github.com/Redestrov/CyberMaker-site/internal/model"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type Store interface {
	Ranking(ctx context.Context, limit int) ([]*model.RankingEntry, error)
	AdjustScore(ctx context.Context, userID model.UserID, delta int64) error
}

type service struct {
	store Store
}

func New(store Store) *service {
	return &service{store}
}

// List returns up to limit users ordered by score, highest first, ties broken by id.
func (s *service) List(ctx context.Context, limit int) ([]*model.RankingEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	entries, err := s.store.Ranking(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing ranking: %w", err)
	}
	return entries, nil
}

func (s *service) Adjust(ctx context.Context, params *model.AdjustScoreParams) error {
	if params.UserID <= 0 || params.Delta == 0 {
		return model.ErrorMissingFields
	}
	if err := s.store.AdjustScore(ctx, params.UserID, params.Delta); err != nil {
		if errors.Is(err, model.ErrorUserNotFound) || errors.Is(err, model.ErrorNegativeScore) {
			return err
		}
		return fmt.Errorf("adjusting score: %w", err)
	}
	metrics.AwardPoints(metrics.EventManual, params.Delta)
	log.Infof("score of user %d adjusted by %d", params.UserID, params.Delta)
	return nil
}
