// Package contact holds the validated value types of the address book:
// a contact Name, its Phone numbers, and the Record that ties them together.
package contact

import "strings"

// Record is a single contact: a fixed Name and an ordered list of phones
// with no two phones sharing a value.
type Record struct {
	name   Name
	phones []Phone
}

// NewRecord creates a Record with no phones.
// It returns a *ValidationError when name is empty.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phones in insertion order.
func (r *Record) Phones() []Phone {
	return append([]Phone(nil), r.phones...)
}

// AddPhone validates number and appends it to the record.
// Validation runs before the duplicate check. On error the phones are unchanged.
func (r *Record) AddPhone(number string) error {
	p, err := NewPhone(number)
	if err != nil {
		return err
	}
	if r.indexOf(number) >= 0 {
		return &DuplicateError{Contact: r.name.value, Phone: number}
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the phone equal to number.
// A missing number is not an error; the result reports whether a phone was removed.
func (r *Record) RemovePhone(number string) bool {
	i := r.indexOf(number)
	if i < 0 {
		return false
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return true
}

// EditPhone replaces the phone equal to old with newNumber, keeping its position.
// The bool reports whether old was found; when it was not, nothing happens.
// newNumber is validated only when old is found, and may not collide with
// another phone of the record.
func (r *Record) EditPhone(old, newNumber string) (bool, error) {
	i := r.indexOf(old)
	if i < 0 {
		return false, nil
	}
	p, err := NewPhone(newNumber)
	if err != nil {
		return true, err
	}
	if j := r.indexOf(newNumber); j >= 0 && j != i {
		return true, &DuplicateError{Contact: r.name.value, Phone: newNumber}
	}
	r.phones[i] = p
	return true, nil
}

// FindPhone returns the phone whose value equals number exactly.
func (r *Record) FindPhone(number string) (Phone, bool) {
	i := r.indexOf(number)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

func (r *Record) indexOf(number string) int {
	for i, p := range r.phones {
		if p.value == number {
			return i
		}
	}
	return -1
}

// String formats the record as "Contact name: <name>, phones: <p1>; <p2>".
func (r *Record) String() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return "Contact name: " + r.name.value + ", phones: " + strings.Join(values, "; ")
}
