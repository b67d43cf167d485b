package models

import (
	"errors"
	"regexp"
)

const (
	MinAccountIDLen = 2
	MaxAccountIDLen = 64
)

// Lowercase alphanumeric parts joined by single '-', '_' or '.' separators.
var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)

// ValidateAccountID checks that id is a well-formed NEAR account id.
func ValidateAccountID(id string) error {
	if len(id) < MinAccountIDLen {
		return errors.New("account id is too short")
	}
	if len(id) > MaxAccountIDLen {
		return errors.New("account id is too long")
	}
	if !accountIDPattern.MatchString(id) {
		return errors.New("account id contains invalid characters or separators")
	}
	return nil
}

func IsValidAccountID(id string) bool {
	return ValidateAccountID(id) == nil
}
