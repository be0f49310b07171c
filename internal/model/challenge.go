package model

import "time"

type ChallengeID int64
type ActivityID int64

type ActivityStatus string

const (
	ActivityStatusSubmitted ActivityStatus = "submitted"
	ActivityStatusCompleted ActivityStatus = "completed"
)

type CreateChallengeParams struct {
	Title       string `json:"titulo" validate:"required,max=200"`
	Description string `json:"descricao" validate:"required"`
	Area        string `json:"area" validate:"required,max=100"`
}

type Challenge struct {
	ID          ChallengeID `db:"ID" json:"id"`
	RecruiterID UserID      `db:"RecruiterID" json:"recrutador_id"`
	CreatedAt   time.Time   `db:"CreatedAt" json:"data_postagem"`
	Title       string      `db:"Title" json:"titulo"`
	Description string      `db:"Description" json:"descricao"`
	Area        string      `db:"Area" json:"area"`
}

type SubmitParams struct {
	ChallengeID   ChallengeID `json:"desafio_id" validate:"required,gt=0"`
	SubmissionRef string      `json:"link" validate:"required,max=500"`
}

type Activity struct {
	ID            ActivityID     `db:"ID" json:"id"`
	UserID        UserID         `db:"UserID" json:"usuario_id"`
	ChallengeID   ChallengeID    `db:"ChallengeID" json:"desafio_id"`
	CreatedAt     time.Time      `db:"CreatedAt" json:"data_submissao"`
	SubmissionRef string         `db:"SubmissionRef" json:"link"`
	Status        ActivityStatus `db:"Status" json:"status"`
	DedupeKey     *string        `db:"DedupeKey" json:"-"`
}

// DuplicatePolicy says whether a user may collect the award for the same challenge twice.
type DuplicatePolicy string

const (
	DuplicatesAllow  DuplicatePolicy = "allow"
	DuplicatesReject DuplicatePolicy = "reject"
)
