package idea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Redestrov/CyberMaker-site/internal/metrics"
	"github.com/Redestrov/CyberMaker-site/internal/model"
)

type Store interface {
	FindUserByID(ctx context.Context, id model.UserID) (*model.User, error)
	CreateIdea(ctx context.Context, idea *model.Idea) (model.IdeaID, error)
	ListIdeas(ctx context.Context) ([]*model.Idea, error)
	ListIdeasByUser(ctx context.Context, userID model.UserID) ([]*model.Idea, error)
	CreateConclusion(ctx context.Context, conclusion *model.Conclusion, award int64) (model.ConclusionID, error)
	ListConclusions(ctx context.Context) ([]*model.Conclusion, error)
	FindConclusion(ctx context.Context, id model.ConclusionID) (*model.Conclusion, error)
}

type Media interface {
	Save(prefix, raw string) (*string, error)
	Remove(ref *string)
}

type service struct {
	store           Store
	media           Media
	conclusionAward int64
}

func New(store Store, media Media, conclusionAward int64) *service {
	return &service{store, media, conclusionAward}
}

func (s *service) Post(ctx context.Context, userID model.UserID, params *model.CreateIdeaParams) (model.IdeaID, error) {
	title := strings.TrimSpace(params.Title)
	category := strings.TrimSpace(params.Category)
	description := strings.TrimSpace(params.Description)
	if title == "" || category == "" || description == "" {
		return 0, model.ErrorMissingFields
	}
	if _, err := s.store.FindUserByID(ctx, userID); err != nil {
		return 0, err
	}

	image, err := s.media.Save("idea", params.Image)
	if err != nil {
		return 0, fmt.Errorf("saving idea image: %w", err)
	}

	id, err := s.store.CreateIdea(ctx, &model.Idea{
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
		Title:       title,
		Category:    category,
		Description: description,
		Image:       image,
	})
	if err != nil {
		s.media.Remove(image)
		return 0, fmt.Errorf("creating idea: %w", err)
	}
	return id, nil
}

func (s *service) List(ctx context.Context) ([]*model.Idea, error) {
	return s.store.ListIdeas(ctx)
}

func (s *service) ListByUser(ctx context.Context, userID model.UserID) ([]*model.Idea, error) {
	return s.store.ListIdeasByUser(ctx, userID)
}

// Conclude closes an idea and credits its owner with the conclusion award.
func (s *service) Conclude(ctx context.Context, params *model.CreateConclusionParams) (model.ConclusionID, error) {
	video := strings.TrimSpace(params.Video)
	images := strings.TrimSpace(params.Images)
	description := strings.TrimSpace(params.Description)
	if params.IdeaID <= 0 || video == "" || images == "" || description == "" {
		return 0, model.ErrorMissingFields
	}

	id, err := s.store.CreateConclusion(ctx, &model.Conclusion{
		IdeaID:      params.IdeaID,
		CreatedAt:   time.Now().UTC(),
		Video:       video,
		Images:      images,
		Description: description,
	}, s.conclusionAward)
	if err != nil {
		if errors.Is(err, model.ErrorIdeaNotFound) || errors.Is(err, model.ErrorUserNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("creating conclusion: %w", err)
	}
	metrics.AwardPoints(metrics.EventConclusion, s.conclusionAward)
	return id, nil
}

func (s *service) ListConclusions(ctx context.Context) ([]*model.Conclusion, error) {
	return s.store.ListConclusions(ctx)
}

func (s *service) FindConclusion(ctx context.Context, id model.ConclusionID) (*model.Conclusion, error) {
	return s.store.FindConclusion(ctx, id)
}
