// Package store provides the customer/account repositories. The SQLite
// implementation backs normal operation; the in-memory one backs guest
// mode and tests. Both satisfy the same interface so callers never care
// which one they hold.
package store

import (
	"context"
	"errors"
	"time"

	"subtrack/internal/core"
)

var (
	// ErrNotFound is returned when a customer or account does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAccountExists is returned on registration with a taken username.
	ErrAccountExists = errors.New("account already exists")
)

// Account is a registered user identity.
type Account struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Store is the read/write contract shared by the persistent and in-memory
// repositories. Customers are scoped per owner; guest mode uses the empty
// owner.
type Store interface {
	ListCustomers(ctx context.Context, owner string) ([]core.CustomerRecord, error)
	GetCustomer(ctx context.Context, owner string, id uint) (core.CustomerRecord, error)
	AddCustomer(ctx context.Context, rec *core.CustomerRecord) error
	UpdateCustomer(ctx context.Context, rec core.CustomerRecord) error
	DeleteCustomer(ctx context.Context, owner string, id uint) error

	CreateAccount(ctx context.Context, acct Account) error
	GetAccount(ctx context.Context, username string) (Account, error)

	Close() error
}
