package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a login stays valid.
const SessionTTL = 30 * 24 * time.Hour

const (
	secretFile  = "secret"
	sessionFile = "session"
)

// ErrNotLoggedIn is returned when no valid session exists.
var ErrNotLoggedIn = errors.New("not logged in")

// Sessions issues and verifies the login tokens stored in the config dir.
// The signing secret is generated per install on first use.
type Sessions struct {
	dir string
}

// NewSessions builds a session helper rooted at the given config dir.
func NewSessions(dir string) *Sessions {
	return &Sessions{dir: dir}
}

// Open records a session for the given username: a signed token written
// to the session file.
func (s *Sessions) Open(username string) error {
	secret, err := s.loadOrCreateSecret()
	if err != nil {
		return err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, sessionFile), []byte(token), 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Current returns the username of the active session, or ErrNotLoggedIn
// when there is no session or the token is expired/invalid.
func (s *Sessions) Current() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if os.IsNotExist(err) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}

	secret, err := s.loadOrCreateSecret()
	if err != nil {
		return "", err
	}

	token, err := jwt.ParseWithClaims(strings.TrimSpace(string(data)), &jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
	if err != nil || !token.Valid {
		return "", ErrNotLoggedIn
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrNotLoggedIn
	}
	return claims.Subject, nil
}

// Close removes the session file. Logging out twice is not an error.
func (s *Sessions) Close() error {
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// loadOrCreateSecret returns the per-install signing secret, generating a
// random one on first use.
func (s *Sessions) loadOrCreateSecret() ([]byte, error) {
	path := filepath.Join(s.dir, secretFile)
	data, err := os.ReadFile(path)
	if err == nil {
		return []byte(strings.TrimSpace(string(data))), nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading secret: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generating secret: %w", err)
	}
	secret := []byte(hex.EncodeToString(raw))

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, secret, 0600); err != nil {
		return nil, fmt.Errorf("writing secret: %w", err)
	}
	return secret, nil
}
