package store

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrUsernameInvalid is returned when a username does not match the required pattern.
	ErrUsernameInvalid = errors.New("username must match [a-z0-9][a-z0-9-]*[a-z0-9]")

	// ErrUsernameReserved is returned when a username matches a reserved route prefix.
	ErrUsernameReserved = errors.New("username is reserved and cannot be used")

	usernameRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9\-]*[a-z0-9])?$`)

	reservedUsernames = map[string]bool{
		"auth":     true,
		"static":   true,
		"quests":   true,
		"admin":    true,
		"api":      true,
		"account":  true,
		"settings": true,
		"metrics":  true,
	}
)

// ValidateUsername checks that username conforms to the required format and is
// not reserved. It does NOT check uniqueness; that is handled at the database
// layer via the unique index on users.username.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return ErrUsernameInvalid
	}
	if reservedUsernames[username] {
		return fmt.Errorf("%w: %q", ErrUsernameReserved, username)
	}
	return nil
}
