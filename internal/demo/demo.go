// Package demo runs a scripted walkthrough of the address book: it adds two
// contacts, edits and looks up a phone, and deletes a contact.
package demo

import (
	"fmt"
	"io"

	"github.com/smileynet/addressbook/internal/render"
	"github.com/smileynet/addressbook/internal/session"
)

// Contact is one entry of the demo data set.
type Contact struct {
	Name   string
	Phones []string
}

// Contacts is the data Seed adds, in order.
var Contacts = []Contact{
	{Name: "John", Phones: []string{"1234567890", "5555555555"}},
	{Name: "Jane", Phones: []string{"9876543210"}},
}

// Seed adds the demo contacts to s.
func Seed(s *session.Session) error {
	for _, c := range Contacts {
		if _, err := s.AddContact(c.Name, c.Phones...); err != nil {
			return fmt.Errorf("demo: seeding %s: %w", c.Name, err)
		}
	}
	return nil
}

// Run seeds s and walks through the demo steps, writing each result to w.
func Run(w io.Writer, r render.Renderer, s *session.Session) error {
	if err := Seed(s); err != nil {
		return err
	}

	for _, rec := range s.Contacts() {
		_, _ = fmt.Fprintln(w, r.Record(rec))
	}

	if err := s.ChangePhone("John", "1234567890", "1112223333"); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	john, err := s.Contact("John")
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	_, _ = fmt.Fprintln(w, r.Record(john))

	phone, err := s.FindPhone("John", "5555555555")
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	_, _ = fmt.Fprintln(w, r.Line(fmt.Sprintf("%s: %s", john.Name(), phone)))

	if err := s.DeleteContact("Jane"); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	_, _ = fmt.Fprintln(w, r.Line(fmt.Sprintf("Deleted Jane, %d contact(s) left", s.Book().Len())))
	return nil
}
