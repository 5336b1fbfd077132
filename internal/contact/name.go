package contact

// Name is the identifying name of a contact. It is never empty.
type Name struct {
	value string
}

// NewName returns a Name for s, or a *ValidationError when s is empty.
// Any non-empty string is kept verbatim, whitespace included.
func NewName(s string) (Name, error) {
	if s == "" {
		return Name{}, &ValidationError{Field: "name", Reason: "name is required"}
	}
	return Name{value: s}, nil
}

// Value returns the name string.
func (n Name) Value() string { return n.value }

func (n Name) String() string { return n.value }
