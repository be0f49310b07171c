package model

import "time"

type UserID int64

type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleStandard  Role = "standard_user"
)

func (r Role) Valid() bool {
	return r == RoleRecruiter || r == RoleStandard
}

type CreateUserParams struct {
	Name     string `json:"nome" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"senha" validate:"required,max=72"`
	Role     Role   `json:"tipo_usuario" validate:"omitempty,oneof=recruiter standard_user"`
	Avatar   string `json:"foto"`
}

type LoginParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// User is a row of the users table. Password and ConfirmationToken never leave the server.
type User struct {
	ID                UserID    `db:"ID" json:"id"`
	CreatedAt         time.Time `db:"CreatedAt" json:"data_criacao"`
	Name              string    `db:"Name" json:"nome"`
	Email             string    `db:"Email" json:"email"`
	Password          string    `db:"Password" json:"-"`
	Role              Role      `db:"Role" json:"tipo_usuario"`
	ConfirmationToken *string   `db:"ConfirmationToken" json:"-"`
	Confirmed         bool      `db:"Confirmed" json:"confirmado"`
	Avatar            *string   `db:"Avatar" json:"foto"`
	Score             int64     `db:"Score" json:"pontos"`
	Online            bool      `db:"Online" json:"online"`
}

func (u *User) IsRecruiter() bool {
	return u.Role == RoleRecruiter
}

// Sanitized returns a copy safe to hand to clients.
func (u *User) Sanitized() *User {
	c := *u
	c.Password = ""
	c.ConfirmationToken = nil
	return &c
}

// PublicUser is what anyone may see about a user.
type PublicUser struct {
	ID        UserID    `json:"id"`
	CreatedAt time.Time `json:"data_criacao"`
	Name      string    `json:"nome"`
	Role      Role      `json:"tipo_usuario"`
	Avatar    *string   `json:"foto"`
	Score     int64     `json:"pontos"`
	Online    bool      `json:"online"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		Name:      u.Name,
		Role:      u.Role,
		Avatar:    u.Avatar,
		Score:     u.Score,
		Online:    u.Online,
	}
}

type AuthenticatedUser struct {
	User  *User  `json:"usuario"`
	Token string `json:"token"`
}

type RankingEntry struct {
	ID     UserID  `db:"ID" json:"id"`
	Name   string  `db:"Name" json:"nome"`
	Avatar *string `db:"Avatar" json:"foto"`
	Score  int64   `db:"Score" json:"pontos"`
	Online bool    `db:"Online" json:"online"`
}

type AdjustScoreParams struct {
	UserID UserID `json:"usuario_id" validate:"required,gt=0"`
	Delta  int64  `json:"delta" validate:"required"`
}

type ResendConfirmationParams struct {
	Email string `json:"email" validate:"required,email"`
}
