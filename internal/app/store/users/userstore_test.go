// internal/app/store/users/userstore_test.go
package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/crackenhq/cracken/internal/app/store/users"
	"github.com/crackenhq/cracken/internal/testutil"
)

func TestCreate_AndLookups(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, "alice@example.com", "hashed", "Alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected assigned id")
	}

	byID, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("expected email round-trip, got %q", byID.Email)
	}

	byEmail, err := store.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("expected id %d, got %d", u.ID, byEmail.ID)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "alice@example.com", "hashed", "Alice"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := store.Create(ctx, "alice@example.com", "other", "Alice Again")
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGetByID_Missing(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, 9999)
	if !errors.Is(err, userstore.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
