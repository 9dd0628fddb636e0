package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"subtrack/internal/core"
)

func newTestSQLite(t *testing.T) Store {
	t.Helper()
	dsn := fmt.Sprintf("file:test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	st, err := NewSQLite(dsn)
	if err != nil {
		t.Fatalf("NewSQLite error: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteCustomerLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestSQLite(t)

	rec := core.CustomerRecord{Owner: "alice", Name: "A", DeviceInfo: "PC", RegDate: "01/01/2025", Duration: 2}
	if err := st.AddCustomer(ctx, &rec); err != nil {
		t.Fatalf("AddCustomer error: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("AddCustomer did not assign an id")
	}

	got, err := st.GetCustomer(ctx, "alice", rec.ID)
	if err != nil {
		t.Fatalf("GetCustomer error: %v", err)
	}
	if got.Name != "A" || got.DeviceInfo != "PC" || got.Duration != 2 {
		t.Errorf("GetCustomer = %+v", got)
	}

	rec.Name = "A2"
	rec.DeviceInfo = ""
	if err := st.UpdateCustomer(ctx, rec); err != nil {
		t.Fatalf("UpdateCustomer error: %v", err)
	}
	got, _ = st.GetCustomer(ctx, "alice", rec.ID)
	if got.Name != "A2" || got.DeviceInfo != "" {
		t.Errorf("after update = %+v", got)
	}

	if err := st.DeleteCustomer(ctx, "alice", rec.ID); err != nil {
		t.Fatalf("DeleteCustomer error: %v", err)
	}
	if _, err := st.GetCustomer(ctx, "alice", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := st.DeleteCustomer(ctx, "alice", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestSQLiteOwnerScoping(t *testing.T) {
	ctx := context.Background()
	st := newTestSQLite(t)

	mine := core.CustomerRecord{Owner: "alice", Name: "mine", RegDate: "01/01/2025", Duration: 1}
	other := core.CustomerRecord{Owner: "bob", Name: "other", RegDate: "01/01/2025", Duration: 1}
	for _, rec := range []*core.CustomerRecord{&mine, &other} {
		if err := st.AddCustomer(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	records, err := st.ListCustomers(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Name != "mine" || records[0].Owner != "alice" {
		t.Errorf("alice sees %+v", records)
	}

	if _, err := st.GetCustomer(ctx, "alice", other.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound across owners, got %v", err)
	}
	if err := st.UpdateCustomer(ctx, core.CustomerRecord{ID: other.ID, Owner: "alice", Name: "hijack"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound updating across owners, got %v", err)
	}
}

func TestSQLiteUpdateMissing(t *testing.T) {
	ctx := context.Background()
	st := newTestSQLite(t)

	rec := core.CustomerRecord{ID: 42, Owner: "alice", Name: "ghost", RegDate: "01/01/2025", Duration: 1}
	if err := st.UpdateCustomer(ctx, rec); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteAccounts(t *testing.T) {
	ctx := context.Background()
	st := newTestSQLite(t)

	acct := Account{Username: "alice", PasswordHash: "abc123", CreatedAt: time.Now()}
	if err := st.CreateAccount(ctx, acct); err != nil {
		t.Fatalf("CreateAccount error: %v", err)
	}
	if err := st.CreateAccount(ctx, acct); !errors.Is(err, ErrAccountExists) {
		t.Errorf("expected ErrAccountExists, got %v", err)
	}

	got, err := st.GetAccount(ctx, "alice")
	if err != nil {
		t.Fatalf("GetAccount error: %v", err)
	}
	if got.PasswordHash != "abc123" {
		t.Errorf("GetAccount = %+v", got)
	}

	if _, err := st.GetAccount(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
