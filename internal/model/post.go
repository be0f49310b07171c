package model

import "time"

type PostID int64
type IdeaID int64
type ConclusionID int64

type CreateJournalPostParams struct {
	Title *string `json:"titulo" validate:"omitempty,max=200"`
	Body  string  `json:"texto" validate:"required"`
}

type JournalPost struct {
	ID        PostID    `db:"ID" json:"id"`
	UserID    UserID    `db:"UserID" json:"usuario_id"`
	CreatedAt time.Time `db:"CreatedAt" json:"data_criacao"`
	Title     *string   `db:"Title" json:"titulo"`
	Body      string    `db:"Body" json:"texto"`
}

type CreateIdeaParams struct {
	Title       string `json:"titulo" validate:"required,max=200"`
	Category    string `json:"categoria" validate:"required,max=100"`
	Description string `json:"descricao" validate:"required"`
	Image       string `json:"imagem"`
}

type Idea struct {
	ID          IdeaID    `db:"ID" json:"id"`
	UserID      UserID    `db:"UserID" json:"usuario_id"`
	CreatedAt   time.Time `db:"CreatedAt" json:"data_criacao"`
	Title       string    `db:"Title" json:"titulo"`
	Category    string    `db:"Category" json:"categoria"`
	Description string    `db:"Description" json:"descricao"`
	Image       *string   `db:"Image" json:"imagem"`
}

type CreateConclusionParams struct {
	IdeaID      IdeaID `json:"ideia_id" validate:"required,gt=0"`
	Video       string `json:"video" validate:"required,max=500"`
	Images      string `json:"imagens" validate:"required"`
	Description string `json:"descricao" validate:"required"`
}

type Conclusion struct {
	ID          ConclusionID `db:"ID" json:"id"`
	IdeaID      IdeaID       `db:"IdeaID" json:"ideia_id"`
	CreatedAt   time.Time    `db:"CreatedAt" json:"data"`
	Video       string       `db:"Video" json:"video"`
	Images      string       `db:"Images" json:"imagens"`
	Description string       `db:"Description" json:"descricao"`
}

type CreateCommunityPostParams struct {
	Title string `json:"titulo" validate:"required,max=200"`
	Text  string `json:"texto" validate:"required"`
	Image string `json:"imagem"`
}

type CommunityPost struct {
	ID           PostID    `db:"ID" json:"id"`
	UserID       UserID    `db:"UserID" json:"usuario_id"`
	CreatedAt    time.Time `db:"CreatedAt" json:"data_criacao"`
	Title        string    `db:"Title" json:"titulo"`
	Text         string    `db:"Text" json:"texto"`
	Image        *string   `db:"Image" json:"imagem"`
	AuthorName   string    `db:"AuthorName" json:"autor_nome"`
	AuthorAvatar *string   `db:"AuthorAvatar" json:"autor_foto"`
}
