package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

const userColumns = `ID, CreatedAt, Name, Email, Password, Role, ConfirmationToken, Confirmed, Avatar, Score, Online`

func (s *Store) CreateUser(ctx context.Context, user *model.User) (model.UserID, error) {
	res, err := s.db.NamedExecContext(ctx, `insert into users
		(CreatedAt, Name, Email, Password, Role, ConfirmationToken, Confirmed, Avatar, Score, Online)
		values(:CreatedAt, :Name, :Email, :Password, :Role, :ConfirmationToken, :Confirmed, :Avatar, 0, FALSE)`, user)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrorDuplicateEmail
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting user id: %w", err)
	}
	user.ID = model.UserID(id)
	return user.ID, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := s.db.GetContext(ctx, user, `select `+userColumns+` from users where Email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}
	return user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id model.UserID) (*model.User, error) {
	return findUserByID(ctx, s.db, id)
}

func findUserByID(ctx context.Context, q sqlx.QueryerContext, id model.UserID) (*model.User, error) {
	user := &model.User{}
	err := sqlx.GetContext(ctx, q, user, `select `+userColumns+` from users where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

// SetConfirmed flips exactly one unconfirmed row holding token to confirmed and clears the token.
// Concurrent calls with the same token have a single winner.
func (s *Store) SetConfirmed(ctx context.Context, token string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `update users
		set Confirmed = TRUE, ConfirmationToken = NULL
		where ConfirmationToken = ? and Confirmed = FALSE`, token)
	if err != nil {
		return false, fmt.Errorf("confirming user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}
	return rows == 1, nil
}

func (s *Store) AdjustScore(ctx context.Context, userID model.UserID, delta int64) error {
	return adjustScore(ctx, s.db, userID, delta)
}

func adjustScore(ctx context.Context, db sqlx.ExtContext, userID model.UserID, delta int64) error {
	res, err := db.ExecContext(ctx, `update users set Score = Score + ? where ID = ? and Score + ? >= 0`, delta, userID, delta)
	if err != nil {
		return fmt.Errorf("adjusting score: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 1 {
		return nil
	}

	if delta < 0 {
		var exists int
		err := sqlx.GetContext(ctx, db, &exists, `select count(*) from users where ID = ?`, userID)
		if err != nil {
			return fmt.Errorf("checking user: %w", err)
		}
		if exists == 1 {
			return model.ErrorNegativeScore
		}
	}
	return model.ErrorUserNotFound
}

func (s *Store) SetOnline(ctx context.Context, userID model.UserID, online bool) error {
	res, err := s.db.ExecContext(ctx, `update users set Online = ? where ID = ?`, online, userID)
	if err != nil {
		return fmt.Errorf("updating presence: %w", err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	} else if rows == 0 {
		return model.ErrorUserNotFound
	}
	return nil
}

func (s *Store) Ranking(ctx context.Context, limit int) ([]*model.RankingEntry, error) {
	entries := []*model.RankingEntry{}
	err := s.db.SelectContext(ctx, &entries, `select ID, Name, Avatar, Score, Online
		from users
		order by Score desc, ID asc
		limit ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching ranking: %w", err)
	}
	return entries, nil
}

// RankOf is the 1-based leaderboard position of a user: one more than the number of users ahead.
func (s *Store) RankOf(ctx context.Context, userID model.UserID) (int64, error) {
	var rank int64
	err := s.db.GetContext(ctx, &rank, `select count(*) + 1 from users
		where Score > (select Score from users where ID = ?)`, userID)
	if err != nil {
		return 0, fmt.Errorf("fetching rank: %w", err)
	}
	return rank, nil
}
