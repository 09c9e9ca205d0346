package email

import (
	"errors"
	"net/mail"
	"strings"
)

// ErrInvalidAddress indicates an email address is not valid.
var ErrInvalidAddress = errors.New("invalid email address")

// Address is a bare, lower-cased email address.
type Address string

// ParseAddress checks that raw is shaped like an email address and returns its
// normalised form. It says nothing about whether the mailbox exists.
func ParseAddress(raw string) (Address, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidAddress
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", ErrInvalidAddress
	}

	// mail.ParseAddress accepts display names and comments such as
	// "Alice <alice@example.com>". Only the bare address is allowed.
	if addr.Address != trimmed {
		return "", ErrInvalidAddress
	}

	return Address(strings.ToLower(addr.Address)), nil
}

func (a Address) String() string { return string(a) }

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
