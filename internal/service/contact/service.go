package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/Redestrov/CyberMaker-site/internal/mail"
	"github.com/Redestrov/CyberMaker-site/internal/metrics"
	"github.com/Redestrov/CyberMaker-site/internal/model"
)

type Store interface {
	FindUserByID(ctx context.Context, id model.UserID) (*model.User, error)
	CreateContact(ctx context.Context, contact *model.ContactMessage) (model.ContactID, error)
	ListContacts(ctx context.Context, userID model.UserID) ([]*model.ContactMessage, error)
}

type Templates interface {
	Render(name string, data interface{}) (string, error)
}

type service struct {
	store     Store
	templates Templates
	transport mail.Transport
}

func New(store Store, templates Templates, transport mail.Transport) *service {
	return &service{store, templates, transport}
}

// Contact stores a recruiter's message to a user and notifies the user by mail.
func (s *service) Contact(ctx context.Context, recruiterID model.UserID, params *model.ContactParams) (model.ContactID, error) {
	message := strings.TrimSpace(params.Message)
	if params.UserID <= 0 || message == "" {
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

	user, err := s.store.FindUserByID(ctx, params.UserID)
	if err != nil {
		return 0, err
	}

	id, err := s.store.CreateContact(ctx, &model.ContactMessage{
		RecruiterID: recruiterID,
		UserID:      user.ID,
		CreatedAt:   time.Now().UTC(),
		Message:     message,
	})
	if err != nil {
		return 0, fmt.Errorf("creating contact: %w", err)
	}

	if err := s.notify(ctx, recruiter, user, message); err != nil {
		metrics.MailFailures.WithLabelValues(mail.TemplateContact).Inc()
		log.Errorf("notifying user %d of contact %d: %+v", user.ID, id, err)
	}
	return id, nil
}

func (s *service) notify(ctx context.Context, recruiter, user *model.User, message string) error {
	body, err := s.templates.Render(mail.TemplateContact, map[string]string{
		"Name":           user.Name,
		"RecruiterName":  recruiter.Name,
		"RecruiterEmail": recruiter.Email,
		"Message":        message,
	})
	if err != nil {
		return err
	}
	return s.transport.Send(ctx, &mail.Message{
		To:      user.Email,
		Subject: recruiter.Name + " quer falar com você no CyberMaker",
		HTML:    body,
	})
}

func (s *service) List(ctx context.Context, userID model.UserID) ([]*model.ContactMessage, error) {
	return s.store.ListContacts(ctx, userID)
}
