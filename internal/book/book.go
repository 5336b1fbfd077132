// Package book implements the AddressBook: contact records keyed by name,
// iterated in the order they were first added.
package book

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/smileynet/addressbook/internal/contact"
)

// AddressBook maps contact names to records. It exposes only add, find,
// delete and ordered iteration. It is not safe for concurrent use.
type AddressBook struct {
	records *orderedmap.OrderedMap[string, *contact.Record]
}

// New returns an empty AddressBook.
func New() *AddressBook {
	return &AddressBook{records: orderedmap.New[string, *contact.Record]()}
}

// AddRecord stores r under its name. An existing record with the same name
// is replaced without merging and keeps its place in iteration order.
// r must not be nil.
func (b *AddressBook) AddRecord(r *contact.Record) {
	b.records.Set(r.Name().Value(), r)
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*contact.Record, bool) {
	return b.records.Get(name)
}

// Delete removes the record stored under name. Deleting a missing name is
// a no-op; the result reports whether a record was removed.
func (b *AddressBook) Delete(name string) bool {
	_, present := b.records.Delete(name)
	return present
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return b.records.Len()
}

// All yields name and record pairs in insertion order.
// Each call starts a new iteration.
func (b *AddressBook) All() iter.Seq2[string, *contact.Record] {
	return func(yield func(string, *contact.Record) bool) {
		for pair := b.records.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*contact.Record {
	out := make([]*contact.Record, 0, b.records.Len())
	for _, r := range b.All() {
		out = append(out, r)
	}
	return out
}
