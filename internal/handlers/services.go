package handlers

import (
	"context"

	"github.com/Redestrov/CyberMaker-site/internal/model"
	"github.com/Redestrov/CyberMaker-site/pkg/session"
)

type AccountService interface {
	Register(ctx context.Context, params *model.CreateUserParams) (model.UserID, error)
	Login(ctx context.Context, params *model.LoginParams) (*model.AuthenticatedUser, error)
	Logout(ctx context.Context, userID model.UserID) error
	Confirm(ctx context.Context, token string) error
	ResendConfirmation(ctx context.Context, email string) error
}

type ChallengeService interface {
	PostChallenge(ctx context.Context, recruiterID model.UserID, params *model.CreateChallengeParams) (model.ChallengeID, error)
	ListChallenges(ctx context.Context) ([]*model.Challenge, error)
	Submit(ctx context.Context, userID model.UserID, params *model.SubmitParams) (model.ActivityID, error)
	ListActivities(ctx context.Context, userID model.UserID) ([]*model.Activity, error)
}

type RankingService interface {
	List(ctx context.Context, limit int) ([]*model.RankingEntry, error)
	Adjust(ctx context.Context, params *model.AdjustScoreParams) error
}

type JournalService interface {
	Post(ctx context.Context, userID model.UserID, params *model.CreateJournalPostParams) (model.PostID, error)
	List(ctx context.Context, userID model.UserID) ([]*model.JournalPost, error)
}

type IdeaService interface {
	Post(ctx context.Context, userID model.UserID, params *model.CreateIdeaParams) (model.IdeaID, error)
	List(ctx context.Context) ([]*model.Idea, error)
	ListByUser(ctx context.Context, userID model.UserID) ([]*model.Idea, error)
	Conclude(ctx context.Context, params *model.CreateConclusionParams) (model.ConclusionID, error)
	ListConclusions(ctx context.Context) ([]*model.Conclusion, error)
	FindConclusion(ctx context.Context, id model.ConclusionID) (*model.Conclusion, error)
}

type CommunityService interface {
	Post(ctx context.Context, userID model.UserID, params *model.CreateCommunityPostParams) (model.PostID, error)
	Feed(ctx context.Context, limit int) ([]*model.CommunityPost, error)
}

type ContactService interface {
	Contact(ctx context.Context, recruiterID model.UserID, params *model.ContactParams) (model.ContactID, error)
	List(ctx context.Context, userID model.UserID) ([]*model.ContactMessage, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID model.UserID) (*model.Profile, error)
}

type SessionService interface {
	Verify(token string) (*session.Claims, error)
	PublicJWK() ([]byte, error)
}
