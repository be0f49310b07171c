package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

func (s *Store) CreateChallenge(ctx context.Context, challenge *model.Challenge) (model.ChallengeID, error) {
	res, err := s.db.NamedExecContext(ctx, `insert into challenges
		(RecruiterID, CreatedAt, Title, Description, Area)
		values(:RecruiterID, :CreatedAt, :Title, :Description, :Area)`, challenge)
	if err != nil {
		return 0, fmt.Errorf("inserting challenge: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting challenge id: %w", err)
	}
	challenge.ID = model.ChallengeID(id)
	return challenge.ID, nil
}

func (s *Store) ListChallenges(ctx context.Context) ([]*model.Challenge, error) {
	challenges := []*model.Challenge{}
	err := s.db.SelectContext(ctx, &challenges, `select ID, RecruiterID, CreatedAt, Title, Description, Area
		from challenges
		order by CreatedAt desc, ID desc`)
	if err != nil {
		return nil, fmt.Errorf("fetching challenges: %w", err)
	}
	return challenges, nil
}

// SubmitActivity records the activity and awards points to its user as one unit.
// A failure in either statement leaves neither applied.
func (s *Store) SubmitActivity(ctx context.Context, activity *model.Activity, award int64) (model.ActivityID, error) {
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists, `select count(*) from challenges where ID = ?`, activity.ChallengeID); err != nil {
			return fmt.Errorf("checking challenge: %w", err)
		}
		if exists == 0 {
			return model.ErrorChallengeNotFound
		}

		res, err := tx.NamedExecContext(ctx, `insert into activities
			(UserID, ChallengeID, CreatedAt, SubmissionRef, Status, DedupeKey)
			values(:UserID, :ChallengeID, :CreatedAt, :SubmissionRef, :Status, :DedupeKey)`, activity)
		if err != nil {
			if isUniqueViolation(err) {
				return model.ErrorDuplicateSubmission
			}
			return fmt.Errorf("inserting activity: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting activity id: %w", err)
		}

		if err := adjustScore(ctx, tx, activity.UserID, award); err != nil {
			return fmt.Errorf("awarding submission points: %w", err)
		}

		activity.ID = model.ActivityID(id)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return activity.ID, nil
}

func (s *Store) ListActivities(ctx context.Context, userID model.UserID) ([]*model.Activity, error) {
	activities := []*model.Activity{}
	err := s.db.SelectContext(ctx, &activities, `select ID, UserID, ChallengeID, CreatedAt, SubmissionRef, Status, DedupeKey
		from activities
		where UserID = ?
		order by CreatedAt desc, ID desc`, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}
	return activities, nil
}
