package model

import "time"

type ContactID int64

type ContactParams struct {
	UserID  UserID `json:"usuario_id" validate:"required,gt=0"`
	Message string `json:"mensagem" validate:"required,max=2000"`
}

// ContactMessage is a recruiter reaching out to a user.
type ContactMessage struct {
	ID          ContactID `db:"ID" json:"id"`
	RecruiterID UserID    `db:"RecruiterID" json:"recrutador_id"`
	UserID      UserID    `db:"UserID" json:"usuario_id"`
	CreatedAt   time.Time `db:"CreatedAt" json:"data_criacao"`
	Message     string    `db:"Message" json:"mensagem"`
}

type Profile struct {
	User         *PublicUser    `json:"usuario"`
	Rank         int64          `json:"posicao"`
	JournalPosts []*JournalPost `json:"diario"`
	Activities   []*Activity    `json:"atividades"`
	Ideas        []*Idea        `json:"ideias"`
}
