package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

func lastInsertID(res sql.Result, what string) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting %s id: %w", what, err)
	}
	return id, nil
}

func (s *Store) CreateJournalPost(ctx context.Context, post *model.JournalPost) (model.PostID, error) {
	res, err := s.db.NamedExecContext(ctx, `insert into journal_posts
		(UserID, CreatedAt, Title, Body)
		values(:UserID, :CreatedAt, :Title, :Body)`, post)
	if err != nil {
		return 0, fmt.Errorf("inserting journal post: %w", err)
	}
	id, err := lastInsertID(res, "journal post")
	if err != nil {
		return 0, err
	}
	post.ID = model.PostID(id)
	return post.ID, nil
}

func (s *Store) ListJournalPosts(ctx context.Context, userID model.UserID) ([]*model.JournalPost, error) {
	posts := []*model.JournalPost{}
	err := s.db.SelectContext(ctx, &posts, `select ID, UserID, CreatedAt, Title, Body
		from journal_posts
		where UserID = ?
		order by CreatedAt desc, ID desc`, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching journal posts: %w", err)
	}
	return posts, nil
}

func (s *Store) CreateIdea(ctx context.Context, idea *model.Idea) (model.IdeaID, error) {
	res, err := s.db.NamedExecContext(ctx, `insert into ideas
		(UserID, CreatedAt, Title, Category, Description, Image)
		values(:UserID, :CreatedAt, :Title, :Category, :Description, :Image)`, idea)
	if err != nil {
		return 0, fmt.Errorf("inserting idea: %w", err)
	}
	id, err := lastInsertID(res, "idea")
	if err != nil {
		return 0, err
	}
	idea.ID = model.IdeaID(id)
	return idea.ID, nil
}

const ideaColumns = `ID, UserID, CreatedAt, Title, Category, Description, Image`

func (s *Store) ListIdeas(ctx context.Context) ([]*model.Idea, error) {
	ideas := []*model.Idea{}
	err := s.db.SelectContext(ctx, &ideas, `select `+ideaColumns+` from ideas order by CreatedAt desc, ID desc`)
	if err != nil {
		return nil, fmt.Errorf("fetching ideas: %w", err)
	}
	return ideas, nil
}

func (s *Store) ListIdeasByUser(ctx context.Context, userID model.UserID) ([]*model.Idea, error) {
	ideas := []*model.Idea{}
	err := s.db.SelectContext(ctx, &ideas, `select `+ideaColumns+` from ideas
		where UserID = ?
		order by CreatedAt desc, ID desc`, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching ideas: %w", err)
	}
	return ideas, nil
}

// CreateConclusion stores the conclusion and awards points to the idea owner as one unit.
func (s *Store) CreateConclusion(ctx context.Context, conclusion *model.Conclusion, award int64) (model.ConclusionID, error) {
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		var owner model.UserID
		err := tx.GetContext(ctx, &owner, `select UserID from ideas where ID = ?`, conclusion.IdeaID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.ErrorIdeaNotFound
			}
			return fmt.Errorf("fetching idea owner: %w", err)
		}

		res, err := tx.NamedExecContext(ctx, `insert into conclusions
			(IdeaID, CreatedAt, Video, Images, Description)
			values(:IdeaID, :CreatedAt, :Video, :Images, :Description)`, conclusion)
		if err != nil {
			return fmt.Errorf("inserting conclusion: %w", err)
		}
		id, err := lastInsertID(res, "conclusion")
		if err != nil {
			return err
		}

		if err := adjustScore(ctx, tx, owner, award); err != nil {
			return fmt.Errorf("awarding conclusion points: %w", err)
		}

		conclusion.ID = model.ConclusionID(id)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return conclusion.ID, nil
}

const conclusionColumns = `ID, IdeaID, CreatedAt, Video, Images, Description`

func (s *Store) ListConclusions(ctx context.Context) ([]*model.Conclusion, error) {
	conclusions := []*model.Conclusion{}
	err := s.db.SelectContext(ctx, &conclusions, `select `+conclusionColumns+` from conclusions order by CreatedAt desc, ID desc`)
	if err != nil {
		return nil, fmt.Errorf("fetching conclusions: %w", err)
	}
	return conclusions, nil
}

func (s *Store) FindConclusion(ctx context.Context, id model.ConclusionID) (*model.Conclusion, error) {
	conclusion := &model.Conclusion{}
	err := s.db.GetContext(ctx, conclusion, `select `+conclusionColumns+` from conclusions where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorConclusionNotFound
		}
		return nil, fmt.Errorf("fetching conclusion: %w", err)
	}
	return conclusion, nil
}

// CreateCommunityPost stores the post and awards points to its author as one unit.
func (s *Store) CreateCommunityPost(ctx context.Context, post *model.CommunityPost, award int64) (model.PostID, error) {
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, `insert into community_posts
			(UserID, CreatedAt, Title, Text, Image)
			values(:UserID, :CreatedAt, :Title, :Text, :Image)`, post)
		if err != nil {
			return fmt.Errorf("inserting community post: %w", err)
		}
		id, err := lastInsertID(res, "community post")
		if err != nil {
			return err
		}

		if err := adjustScore(ctx, tx, post.UserID, award); err != nil {
			return fmt.Errorf("awarding community points: %w", err)
		}

		post.ID = model.PostID(id)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return post.ID, nil
}

func (s *Store) CommunityFeed(ctx context.Context, limit int) ([]*model.CommunityPost, error) {
	posts := []*model.CommunityPost{}
	err := s.db.SelectContext(ctx, &posts, `select p.ID, p.UserID, p.CreatedAt, p.Title, p.Text, p.Image,
			u.Name as AuthorName, u.Avatar as AuthorAvatar
		from community_posts p
		join users u on u.ID = p.UserID
		order by p.CreatedAt desc, p.ID desc
		limit ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching community feed: %w", err)
	}
	return posts, nil
}
