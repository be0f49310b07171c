package store

import (
	"context"
	"fmt"

	"github.com/Redestrov/CyberMaker-site/internal/model"
)

func (s *Store) CreateContact(ctx context.Context, contact *model.ContactMessage) (model.ContactID, error) {
	res, err := s.db.NamedExecContext(ctx, `insert into contacts
		(RecruiterID, UserID, CreatedAt, Message)
		values(:RecruiterID, :UserID, :CreatedAt, :Message)`, contact)
	if err != nil {
		return 0, fmt.Errorf("inserting contact: %w", err)
	}
	id, err := lastInsertID(res, "contact")
	if err != nil {
		return 0, err
	}
	contact.ID = model.ContactID(id)
	return contact.ID, nil
}

func (s *Store) ListContacts(ctx context.Context, userID model.UserID) ([]*model.ContactMessage, error) {
	contacts := []*model.ContactMessage{}
	err := s.db.SelectContext(ctx, &contacts, `select ID, RecruiterID, UserID, CreatedAt, Message
		from contacts
		where UserID = ?
		order by CreatedAt desc, ID desc`, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching contacts: %w", err)
	}
	return contacts, nil
}
