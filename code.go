package fundwatch

import "fmt"

// Code is a fund code: exactly 6 ASCII digits, e.g. "001186".
type Code string

// ParseCode validates s as a fund code.
func ParseCode(s string) (Code, error) {
	c := Code(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks that c is made of exactly 6 digits.
func (c Code) Validate() error {
	if len(c) != 6 {
		return fmt.Errorf("invalid fund code %q: must have 6 digits", string(c))
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid fund code %q: must only contain digits", string(c))
		}
	}
	return nil
}

func (c Code) String() string { return string(c) }
