package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// keyringService is the service name under which SMTP passwords are stored
// in the OS keyring.
const keyringService = "email-warmup"

// ErrNoKeyringPassword is returned when no password is stored for the user.
var ErrNoKeyringPassword = errors.New("no password stored in keyring")

// LookupKeyringPassword reads the SMTP password for user from the OS keyring.
func LookupKeyringPassword(user string) (string, error) {
	pw, err := keyring.Get(keyringService, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoKeyringPassword
		}
		return "", fmt.Errorf("keyring lookup failed: %w", err)
	}
	return pw, nil
}

// StoreKeyringPassword writes the SMTP password for user to the OS keyring.
func StoreKeyringPassword(user, password string) error {
	if user == "" {
		return errors.New("user is required")
	}
	if password == "" {
		return errors.New("password is required")
	}
	if err := keyring.Set(keyringService, user, password); err != nil {
		return fmt.Errorf("keyring store failed: %w", err)
	}
	return nil
}

// DeleteKeyringPassword removes the stored SMTP password for user.
func DeleteKeyringPassword(user string) error {
	if user == "" {
		return errors.New("user is required")
	}
	if err := keyring.Delete(keyringService, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNoKeyringPassword
		}
		return fmt.Errorf("keyring delete failed: %w", err)
	}
	return nil
}
