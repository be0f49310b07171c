package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Redestrov/CyberMaker-site/internal/mail"
	"github.com/Redestrov/CyberMaker-site/internal/metrics"
	"github.com/Redestrov/CyberMaker-site/internal/model"
)

const (
	PasswordCost = 10
	TokenBytes   = 32
)

type Store interface {
	CreateUser(ctx context.Context, user *model.User) (model.UserID, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id model.UserID) (*model.User, error)
	SetConfirmed(ctx context.Context, token string) (bool, error)
	SetOnline(ctx context.Context, userID model.UserID, online bool) error
}

type Media interface {
	Save(prefix, raw string) (*string, error)
	Remove(ref *string)
}

type Templates interface {
	Render(name string, data interface{}) (string, error)
}

type Sessions interface {
	Issue(userID int64, role string) (string, error)
}

type Options struct {
	BaseURL        string
	PasswordPolicy bool
	MailTimeout    time.Duration
}

type service struct {
	store     Store
	media     Media
	templates Templates
	transport mail.Transport
	sessions  Sessions
	options   Options
	dummyHash []byte
}

func New(store Store, media Media, templates Templates, transport mail.Transport, sessions Sessions, options Options) (*service, error) {
	// compared against when the email is unknown so both failure paths cost one bcrypt run
	dummyHash, err := bcrypt.GenerateFromPassword([]byte(issueTokenOrPanic()), PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("generating dummy hash: %w", err)
	}
	if options.MailTimeout == 0 {
		options.MailTimeout = 15 * time.Second
	}
	return &service{
		store:     store,
		media:     media,
		templates: templates,
		transport: transport,
		sessions:  sessions,
		options:   options,
		dummyHash: dummyHash,
	}, nil
}

func (s *service) Register(ctx context.Context, params *model.CreateUserParams) (model.UserID, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.TrimSpace(params.Email)
	if name == "" || email == "" || params.Password == "" {
		return 0, model.ErrorMissingFields
	}
	if strings.ContainsAny(name, "\r\n") || strings.ContainsAny(email, "\r\n") {
		return 0, fmt.Errorf("%w: line break in name or email", model.ErrorMissingFields)
	}
	if len(params.Password) > MaxPasswordBytes {
		return 0, model.ErrorWeakPassword
	}

	role := params.Role
	if role == "" {
		role = model.RoleStandard
	}
	if !role.Valid() {
		return 0, fmt.Errorf("%w: unknown role %q", model.ErrorMissingFields, role)
	}

	if s.options.PasswordPolicy && !StrongPassword(params.Password) {
		return 0, model.ErrorWeakPassword
	}

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return 0, model.ErrorDuplicateEmail
	} else if !errors.Is(err, model.ErrorUserNotFound) {
		return 0, fmt.Errorf("checking email: %w", err)
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(params.Password), PasswordCost)
	if err != nil {
		return 0, fmt.Errorf("generating encoded password: %w", err)
	}

	avatar, err := s.media.Save("avatar", params.Avatar)
	if err != nil {
		return 0, fmt.Errorf("saving avatar: %w", err)
	}

	token, err := issueToken()
	if err != nil {
		s.media.Remove(avatar)
		return 0, err
	}

	user := &model.User{
		CreatedAt:         time.Now().UTC(),
		Name:              name,
		Email:             email,
		Password:          string(passwordBytes),
		Role:              role,
		ConfirmationToken: &token,
		Avatar:            avatar,
	}

	userID, err := s.store.CreateUser(ctx, user)
	if err != nil {
		s.media.Remove(avatar)
		if errors.Is(err, model.ErrorDuplicateEmail) {
			return 0, err
		}
		return 0, fmt.Errorf("creating user: %w", err)
	}
	metrics.Registrations.Inc()

	// on failure the account stays unconfirmed and the link can be re-sent
	if err := s.sendConfirmation(ctx, user.Email, user.Name, token); err != nil {
		metrics.MailFailures.WithLabelValues(mail.TemplateConfirmation).Inc()
		log.Errorf("sending confirmation to user %d: %+v", userID, err)
	}

	return userID, nil
}

func (s *service) ConfirmationURL(token string) string {
	return strings.TrimRight(s.options.BaseURL, "/") + "/api/confirmar?token=" + url.QueryEscape(token)
}

func (s *service) sendConfirmation(ctx context.Context, email, name, token string) error {
	body, err := s.templates.Render(mail.TemplateConfirmation, map[string]string{
		"Name": name,
		"URL":  s.ConfirmationURL(token),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.options.MailTimeout)
	defer cancel()
	return s.transport.Send(ctx, &mail.Message{
		To:      email,
		Subject: "Confirme sua conta CyberMaker",
		HTML:    body,
	})
}

// Confirm redeems a confirmation token. Unknown and already used tokens fail the same way.
func (s *service) Confirm(ctx context.Context, token string) error {
	if token == "" {
		metrics.Confirmations.WithLabelValues("invalid").Inc()
		return model.ErrorInvalidOrUsedToken
	}
	ok, err := s.store.SetConfirmed(ctx, token)
	if err != nil {
		return fmt.Errorf("confirming account: %w", err)
	}
	if !ok {
		metrics.Confirmations.WithLabelValues("invalid").Inc()
		return model.ErrorInvalidOrUsedToken
	}
	metrics.Confirmations.WithLabelValues("confirmed").Inc()
	log.Infof("account confirmed for token %s...", token[:min(len(token), 8)])
	return nil
}

// ResendConfirmation mails the link again to an unconfirmed account. Unknown or already
// confirmed addresses succeed silently.
func (s *service) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.store.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return nil
		}
		return fmt.Errorf("fetching user: %w", err)
	}
	if user.Confirmed || user.ConfirmationToken == nil {
		return nil
	}
	if err := s.sendConfirmation(ctx, user.Email, user.Name, *user.ConfirmationToken); err != nil {
		metrics.MailFailures.WithLabelValues(mail.TemplateConfirmation).Inc()
		log.Errorf("re-sending confirmation to user %d: %+v", user.ID, err)
	}
	return nil
}

func (s *service) Login(ctx context.Context, params *model.LoginParams) (*model.AuthenticatedUser, error) {
	user, err := s.store.FindUserByEmail(ctx, strings.TrimSpace(params.Email))
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(params.Password))
			metrics.Logins.WithLabelValues("invalid").Inc()
			return nil, model.ErrorInvalidUsernameOrPassword
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(params.Password)); err != nil {
		metrics.Logins.WithLabelValues("invalid").Inc()
		return nil, model.ErrorInvalidUsernameOrPassword
	}

	if !user.Confirmed {
		metrics.Logins.WithLabelValues("unconfirmed").Inc()
		return nil, model.ErrorAccountNotConfirmed
	}

	token, err := s.sessions.Issue(int64(user.ID), string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issuing session: %w", err)
	}

	if err := s.store.SetOnline(ctx, user.ID, true); err != nil {
		log.Warnf("marking user %d online: %v", user.ID, err)
	} else {
		user.Online = true
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	return &model.AuthenticatedUser{User: user.Sanitized(), Token: token}, nil
}

func (s *service) Logout(ctx context.Context, userID model.UserID) error {
	if err := s.store.SetOnline(ctx, userID, false); err != nil {
		return fmt.Errorf("marking user offline: %w", err)
	}
	return nil
}

func (s *service) Fetch(ctx context.Context, userID model.UserID) (*model.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user.Sanitized(), nil
}

func issueToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating confirmation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func issueTokenOrPanic() string {
	token, err := issueToken()
	if err != nil {
		panic(err)
	}
	return token
}
