package contact

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Redestrov/CyberMaker-site/internal/mail"
	"github.com/Redestrov/CyberMaker-site/internal/model"
	"github.com/Redestrov/CyberMaker-site/internal/store"
)

type fakeTransport struct {
	sent []*mail.Message
	err  error
}

func (f *fakeTransport) Send(ctx context.Context, msg *mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestContact(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s, err := store.Open(ctx, store.Config{
		Driver: store.DriverSQLite,
		URL:    "file:" + filepath.Join(t.TempDir(), "contact.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	templates, err := mail.NewTemplates("")
	require.NoError(t, err)
	transport := &fakeTransport{}
	svc := New(s, templates, transport)

	create := func(email string, role model.Role) model.UserID {
		id, err := s.CreateUser(ctx, &model.User{
			CreatedAt: time.Now().UTC(),
			Name:      email,
			Email:     email,
			Password:  "hash",
			Role:      role,
		})
		require.NoError(t, err)
		return id
	}
	recruiter := create("rita@example.com", model.RoleRecruiter)
	student := create("ana@example.com", model.RoleStandard)

	t.Run("Contact", func(t *testing.T) {
		id, err := svc.Contact(ctx, recruiter, &model.ContactParams{UserID: student, Message: "Vamos conversar?"})
		assert.Nil(err)
		assert.NotZero(id)

		require.Len(t, transport.sent, 1)
		assert.Equal("ana@example.com", transport.sent[0].To)
		assert.Contains(transport.sent[0].HTML, "Vamos conversar?")
		assert.Contains(transport.sent[0].HTML, "rita@example.com")

		contacts, err := svc.List(ctx, student)
		assert.Nil(err)
		require.Len(t, contacts, 1)
		assert.Equal(recruiter, contacts[0].RecruiterID)
	})

	t.Run("Not A Recruiter", func(t *testing.T) {
		_, err := svc.Contact(ctx, student, &model.ContactParams{UserID: recruiter, Message: "oi"})
		assert.ErrorIs(err, model.ErrorForbidden)
	})

	t.Run("Unknown User", func(t *testing.T) {
		_, err := svc.Contact(ctx, recruiter, &model.ContactParams{UserID: 999, Message: "oi"})
		assert.ErrorIs(err, model.ErrorUserNotFound)
	})

	t.Run("Mail Failure", func(t *testing.T) {
		transport.err = errors.New("smtp down")
		defer func() { transport.err = nil }()
		id, err := svc.Contact(ctx, recruiter, &model.ContactParams{UserID: student, Message: "de novo"})
		assert.Nil(err)
		assert.NotZero(id)
	})
}
