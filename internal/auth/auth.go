// Package auth implements account registration, credential checks and the
// session token written by login.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"subtrack/internal/store"
)

var (
	// ErrInvalidCredentials is returned on any login failure. It is
	// deliberately the same for an unknown username and a wrong password
	// so logins can't be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("account already exists")
)

// HashPassword returns the hex SHA-256 of the password. This matches the
// scheme the stored accounts already use.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register creates a new account. Username and password must be non-empty;
// a duplicate username surfaces as ErrUserExists.
func Register(ctx context.Context, st store.Store, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username required")
	}
	if password == "" {
		return fmt.Errorf("password required")
	}

	err := st.CreateAccount(ctx, store.Account{
		Username:     username,
		PasswordHash: HashPassword(password),
	})
	if errors.Is(err, store.ErrAccountExists) {
		return ErrUserExists
	}
	return err
}

// Login validates credentials and returns the account's username.
// All failure modes except store errors collapse into
// ErrInvalidCredentials.
func Login(ctx context.Context, st store.Store, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	acct, err := st.GetAccount(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if acct.PasswordHash != HashPassword(password) {
		return "", ErrInvalidCredentials
	}
	return acct.Username, nil
}
