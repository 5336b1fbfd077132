// Package tui implements the two-pane address book browser: contacts on the
// left, the selected contact's phones on the right.
package tui

// Mode represents the current interaction mode.
type Mode int

const (
	ModeBrowse  Mode = iota // Moving through contacts and phones.
	ModeInput               // Typing into the prompt line.
	ModeConfirm             // Waiting for y/n on a delete.
)

// Focus represents which pane has keyboard focus.
type Focus int

const (
	PaneLeft  Focus = iota // Contact list.
	PaneRight              // Phones of the selected contact.
)

// inputKind identifies what the prompt line is collecting.
type inputKind int

const (
	inputAddContact inputKind = iota
	inputAddPhone
	inputEditPhone
	inputFindPhone
)

// prompt returns the prompt label for the input kind.
func (k inputKind) prompt() string {
	switch k {
	case inputAddPhone:
		return "New phone: "
	case inputEditPhone:
		return "Replace with: "
	case inputFindPhone:
		return "Find phone: "
	default:
		return "Add contact: "
	}
}

// placeholder returns the hint shown in an empty prompt line.
func (k inputKind) placeholder() string {
	switch k {
	case inputAddContact:
		return "name [phone ...]"
	default:
		return "10 digits"
	}
}
