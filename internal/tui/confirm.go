package tui

import "fmt"

// confirmState holds the target of a pending delete.
type confirmState struct {
	contact string
	phone   string // Empty when deleting the whole contact.
}

// View renders the confirmation question.
func (cs confirmState) View() string {
	if cs.phone != "" {
		return fmt.Sprintf("Remove phone %s from %s? [y/n]", cs.phone, cs.contact)
	}
	return fmt.Sprintf("Delete contact %s? [y/n]", cs.contact)
}
