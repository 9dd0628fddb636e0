package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"subtrack/internal/core"
)

type memoryStore struct {
	mutex     sync.RWMutex
	customers map[uint]core.CustomerRecord
	accounts  map[string]Account
	nextID    uint
}

// NewMemory builds the ephemeral in-memory store used for guest mode and
// tests. IDs are assigned from a monotonic counter and never reused, even
// after deletion.
func NewMemory() Store {
	return &memoryStore{
		customers: make(map[uint]core.CustomerRecord),
		accounts:  make(map[string]Account),
		nextID:    1,
	}
}

func (s *memoryStore) ListCustomers(_ context.Context, owner string) ([]core.CustomerRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var records []core.CustomerRecord
	for _, rec := range s.customers {
		if rec.Owner == owner {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (s *memoryStore) GetCustomer(_ context.Context, owner string, id uint) (core.CustomerRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rec, ok := s.customers[id]
	if !ok || rec.Owner != owner {
		return core.CustomerRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *memoryStore) AddCustomer(_ context.Context, rec *core.CustomerRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	rec.ID = s.nextID
	s.nextID++
	s.customers[rec.ID] = *rec
	return nil
}

func (s *memoryStore) UpdateCustomer(_ context.Context, rec core.CustomerRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	existing, ok := s.customers[rec.ID]
	if !ok || existing.Owner != rec.Owner {
		return ErrNotFound
	}
	s.customers[rec.ID] = rec
	return nil
}

func (s *memoryStore) DeleteCustomer(_ context.Context, owner string, id uint) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	rec, ok := s.customers[id]
	if !ok || rec.Owner != owner {
		return ErrNotFound
	}
	delete(s.customers, id)
	return nil
}

func (s *memoryStore) CreateAccount(_ context.Context, acct Account) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.accounts[acct.Username]; exists {
		return ErrAccountExists
	}
	if acct.CreatedAt.IsZero() {
		acct.CreatedAt = time.Now()
	}
	s.accounts[acct.Username] = acct
	return nil
}

func (s *memoryStore) GetAccount(_ context.Context, username string) (Account, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	acct, ok := s.accounts[username]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (s *memoryStore) Close() error { return nil }
