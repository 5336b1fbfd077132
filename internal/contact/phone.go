package contact

// PhoneDigits is the exact number of digits a phone number must have.
const PhoneDigits = 10

// Phone is a phone number of exactly PhoneDigits ASCII decimal digits.
type Phone struct {
	value string
}

// NewPhone returns a Phone for s, or a *ValidationError when s is not
// exactly PhoneDigits decimal digits.
func NewPhone(s string) (Phone, error) {
	if err := validatePhone(s); err != nil {
		return Phone{}, err
	}
	return Phone{value: s}, nil
}

// Value returns the digits of the phone number.
func (p Phone) Value() string { return p.value }

func (p Phone) String() string { return p.value }

func validatePhone(s string) error {
	if s == "" {
		return &ValidationError{Field: "phone", Reason: "phone number is required"}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return &ValidationError{Field: "phone", Value: s, Reason: "phone number must contain only digits"}
		}
	}
	if len(s) != PhoneDigits {
		return &ValidationError{Field: "phone", Value: s, Reason: "phone number must be 10 digits"}
	}
	return nil
}
