// Package session applies user commands to an in-memory address book.
// Unlike the book itself, a Session reports unknown contacts and phones as
// errors so a driver can tell the user, and logs every change.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
)

var (
	// ErrContactNotFound indicates no record exists under the requested name.
	ErrContactNotFound = errors.New("contact not found")
	// ErrPhoneNotFound indicates the record has no such phone number.
	ErrPhoneNotFound = errors.New("phone not found")
)

// Session owns an AddressBook for the lifetime of the process.
type Session struct {
	book *book.AddressBook
	log  *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for change events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBook makes the Session operate on an existing book.
func WithBook(b *book.AddressBook) Option {
	return func(s *Session) {
		if b != nil {
			s.book = b
		}
	}
}

// New creates a Session over an empty book unless WithBook is given.
func New(opts ...Option) *Session {
	s := &Session{
		book: book.New(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book returns the underlying address book.
func (s *Session) Book() *book.AddressBook { return s.book }

// AddContact adds phones to the contact called name, creating the contact
// first when it does not exist. Existing contacts are extended, never replaced.
// Every phone is checked before any is added, so a failure leaves the book unchanged.
func (s *Session) AddContact(name string, phones ...string) (*contact.Record, error) {
	rec, existed := s.book.Find(name)
	if !existed {
		var err error
		rec, err = contact.NewRecord(name)
		if err != nil {
			s.log.Warn("add contact rejected", zap.String("contact", name), zap.Error(err))
			return nil, fmt.Errorf("session: add contact: %w", err)
		}
	}

	if err := precheckPhones(rec, phones); err != nil {
		s.log.Warn("add contact rejected", zap.String("contact", name), zap.Error(err))
		return nil, fmt.Errorf("session: add contact: %w", err)
	}
	for _, p := range phones {
		if err := rec.AddPhone(p); err != nil {
			// precheckPhones already ruled this out.
			return nil, fmt.Errorf("session: add contact: %w", err)
		}
	}

	if !existed {
		s.book.AddRecord(rec)
		s.log.Info("contact added", zap.String("contact", name), zap.Strings("phones", phones))
	} else if len(phones) > 0 {
		s.log.Info("contact updated", zap.String("contact", name), zap.Strings("phones", phones))
	}
	return rec, nil
}

// precheckPhones validates phones against rec and against each other.
func precheckPhones(rec *contact.Record, phones []string) error {
	seen := make(map[string]bool, len(phones))
	for _, p := range phones {
		if _, err := contact.NewPhone(p); err != nil {
			return err
		}
		if _, ok := rec.FindPhone(p); ok || seen[p] {
			return &contact.DuplicateError{Contact: rec.Name().Value(), Phone: p}
		}
		seen[p] = true
	}
	return nil
}

// AddPhone adds a phone to an existing contact.
func (s *Session) AddPhone(name, phone string) error {
	rec, err := s.lookup(name)
	if err != nil {
		return fmt.Errorf("session: add phone: %w", err)
	}
	if err := rec.AddPhone(phone); err != nil {
		s.log.Warn("add phone rejected", zap.String("contact", name), zap.String("phone", phone), zap.Error(err))
		return fmt.Errorf("session: add phone: %w", err)
	}
	s.log.Info("phone added", zap.String("contact", name), zap.String("phone", phone))
	return nil
}

// ChangePhone replaces old with newPhone on the named contact.
func (s *Session) ChangePhone(name, old, newPhone string) error {
	rec, err := s.lookup(name)
	if err != nil {
		return fmt.Errorf("session: change phone: %w", err)
	}
	found, err := rec.EditPhone(old, newPhone)
	if !found {
		return fmt.Errorf("session: change phone: %w: %s has no phone %s", ErrPhoneNotFound, name, old)
	}
	if err != nil {
		s.log.Warn("change phone rejected", zap.String("contact", name), zap.String("old", old), zap.String("new", newPhone), zap.Error(err))
		return fmt.Errorf("session: change phone: %w", err)
	}
	s.log.Info("phone changed", zap.String("contact", name), zap.String("old", old), zap.String("new", newPhone))
	return nil
}

// RemovePhone removes a phone from the named contact.
func (s *Session) RemovePhone(name, phone string) error {
	rec, err := s.lookup(name)
	if err != nil {
		return fmt.Errorf("session: remove phone: %w", err)
	}
	if !rec.RemovePhone(phone) {
		return fmt.Errorf("session: remove phone: %w: %s has no phone %s", ErrPhoneNotFound, name, phone)
	}
	s.log.Info("phone removed", zap.String("contact", name), zap.String("phone", phone))
	return nil
}

// FindPhone looks up an exact phone number on the named contact.
func (s *Session) FindPhone(name, phone string) (contact.Phone, error) {
	rec, err := s.lookup(name)
	if err != nil {
		return contact.Phone{}, fmt.Errorf("session: find phone: %w", err)
	}
	p, ok := rec.FindPhone(phone)
	if !ok {
		return contact.Phone{}, fmt.Errorf("session: find phone: %w: %s has no phone %s", ErrPhoneNotFound, name, phone)
	}
	return p, nil
}

// Contact returns the record for name.
func (s *Session) Contact(name string) (*contact.Record, error) {
	rec, err := s.lookup(name)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return rec, nil
}

// DeleteContact removes the named contact from the book.
func (s *Session) DeleteContact(name string) error {
	if !s.book.Delete(name) {
		return fmt.Errorf("session: delete contact: %w: %q", ErrContactNotFound, name)
	}
	s.log.Info("contact deleted", zap.String("contact", name))
	return nil
}

// Contacts returns every record in insertion order.
func (s *Session) Contacts() []*contact.Record {
	return s.book.Records()
}

func (s *Session) lookup(name string) (*contact.Record, error) {
	rec, ok := s.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrContactNotFound, name)
	}
	return rec, nil
}
