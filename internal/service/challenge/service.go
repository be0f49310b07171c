package challenge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/Redestrov/CyberMaker-site/internal/metrics"
	"github.com/Redestrov/CyberMaker-site/internal/model"
)

type Store interface {
	FindUserByID(ctx context.Context, id model.UserID) (*model.User, error)
	CreateChallenge(ctx context.Context, challenge *model.Challenge) (model.ChallengeID, error)
	ListChallenges(ctx context.Context) ([]*model.Challenge, error)
	SubmitActivity(ctx context.Context, activity *model.Activity, award int64) (model.ActivityID, error)
	ListActivities(ctx context.Context, userID model.UserID) ([]*model.Activity, error)
}

type Options struct {
	Award      int64
	Duplicates model.DuplicatePolicy
}

type service struct {
	store   Store
	options Options
}

func New(store Store, options Options) *service {
	if options.Duplicates == "" {
		options.Duplicates = model.DuplicatesAllow
	}
	return &service{store, options}
}

func (s *service) PostChallenge(ctx context.Context, recruiterID model.UserID, params *model.CreateChallengeParams) (model.ChallengeID, error) {
	title := strings.TrimSpace(params.Title)
	description := strings.TrimSpace(params.Description)
	area := strings.TrimSpace(params.Area)
	if title == "" || description == "" || area == "" {
		return 0, model.ErrorMissingFields
	}

	recruiter, err := s.store.FindUserByID(ctx, recruiterID)
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return 0, model.ErrorForbidden
		}
		return 0, fmt.Errorf("fetching recruiter: %w", err)
	}
	if !recruiter.IsRecruiter() {
		return 0, model.ErrorForbidden
	}

	challenge := &model.Challenge{
		RecruiterID: recruiterID,
		CreatedAt:   time.Now().UTC(),
		Title:       title,
		Description: description,
		Area:        area,
	}
	id, err := s.store.CreateChallenge(ctx, challenge)
	if err != nil {
		return 0, fmt.Errorf("creating challenge: %w", err)
	}
	log.Infof("challenge %d posted by recruiter %d", id, recruiterID)
	return id, nil
}

func (s *service) ListChallenges(ctx context.Context) ([]*model.Challenge, error) {
	return s.store.ListChallenges(ctx)
}

// Submit records a completed activity and awards the submission points in one transaction.
func (s *service) Submit(ctx context.Context, userID model.UserID, params *model.SubmitParams) (model.ActivityID, error) {
	ref := strings.TrimSpace(params.SubmissionRef)
	if userID <= 0 || params.ChallengeID <= 0 || ref == "" {
		return 0, model.ErrorMissingFields
	}

	activity := &model.Activity{
		UserID:        userID,
		ChallengeID:   params.ChallengeID,
		CreatedAt:     time.Now().UTC(),
		SubmissionRef: ref,
		Status:        model.ActivityStatusCompleted,
	}
	if s.options.Duplicates == model.DuplicatesReject {
		key := fmt.Sprintf("%d:%d", userID, params.ChallengeID)
		activity.DedupeKey = &key
	}

	id, err := s.store.SubmitActivity(ctx, activity, s.options.Award)
	if err != nil {
		if errors.Is(err, model.ErrorChallengeNotFound) ||
			errors.Is(err, model.ErrorDuplicateSubmission) ||
			errors.Is(err, model.ErrorUserNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("submitting activity: %w", err)
	}
	metrics.AwardPoints(metrics.EventSubmission, s.options.Award)
	return id, nil
}

func (s *service) ListActivities(ctx context.Context, userID model.UserID) ([]*model.Activity, error) {
	return s.store.ListActivities(ctx, userID)
}
