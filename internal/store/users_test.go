package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/questboard/questboard/internal/store"
	"github.com/questboard/questboard/internal/testutil"
)

func newUserStore(t *testing.T) *store.UserStore {
	t.Helper()
	db := testutil.NewTestDB(t)
	return store.NewUserStore(db)
}

func TestUserCreate(t *testing.T) {
	us := newUserStore(t)
	ctx := context.Background()

	u, err := us.Create(ctx, "alice", "alice@example.com", "hunter22", "user")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("Username = %q, want %q", u.Username, "alice")
	}
	if u.Role != "user" {
		t.Errorf("Role = %q, want %q", u.Role, "user")
	}
	if u.PasswordHash == "hunter22" || u.PasswordHash == "" {
		t.Errorf("password stored without hashing: %q", u.PasswordHash)
	}

	got, err := us.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("ID = %q, want %q", got.ID, u.ID)
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	us := newUserStore(t)
	ctx := context.Background()

	if _, err := us.Create(ctx, "alice", "alice@example.com", "hunter22", "user"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := us.Create(ctx, "alice", "other@example.com", "hunter22", "user")
	if !errors.Is(err, store.ErrUsernameTaken) {
		t.Errorf("Create(duplicate) = %v, want ErrUsernameTaken", err)
	}
}

func TestUserCreate_InvalidUsername(t *testing.T) {
	us := newUserStore(t)
	ctx := context.Background()

	_, err := us.Create(ctx, "Not Valid!", "a@example.com", "hunter22", "user")
	if !errors.Is(err, store.ErrUsernameInvalid) {
		t.Errorf("Create(invalid) = %v, want ErrUsernameInvalid", err)
	}

	_, err = us.Create(ctx, "admin", "a@example.com", "hunter22", "user")
	if !errors.Is(err, store.ErrUsernameReserved) {
		t.Errorf("Create(reserved) = %v, want ErrUsernameReserved", err)
	}
}

func TestAuthenticate(t *testing.T) {
	us := newUserStore(t)
	ctx := context.Background()

	created, err := us.Create(ctx, "bob", "bob@example.com", "secret99", "user")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	u, err := us.Authenticate(ctx, "bob", "secret99")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.ID != created.ID {
		t.Errorf("ID = %q, want %q", u.ID, created.ID)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	us := newUserStore(t)
	ctx := context.Background()

	if _, err := us.Create(ctx, "bob", "bob@example.com", "secret99", "user"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := us.Authenticate(ctx, "bob", "wrong-password")
	if !errors.Is(err, store.ErrInvalidCredentials) {
		t.Errorf("Authenticate(wrong password) = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	us := newUserStore(t)
	ctx := context.Background()

	// Unknown users get the same error as wrong passwords.
	_, err := us.Authenticate(ctx, "nobody", "whatever1")
	if !errors.Is(err, store.ErrInvalidCredentials) {
		t.Errorf("Authenticate(unknown user) = %v, want ErrInvalidCredentials", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	us := newUserStore(t)

	_, err := us.GetByID(context.Background(), "nonexistent-id")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID(nonexistent) = %v, want ErrNotFound", err)
	}
}

func TestUpdateRole(t *testing.T) {
	us := newUserStore(t)
	ctx := context.Background()

	u, err := us.Create(ctx, "carol", "carol@example.com", "hunter22", "user")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := us.UpdateRole(ctx, u.ID, "admin")
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if !updated.IsAdmin() {
		t.Errorf("Role = %q, want admin", updated.Role)
	}
}

func TestListAll_OrderedByUsername(t *testing.T) {
	us := newUserStore(t)
	ctx := context.Background()

	for _, name := range []string{"zoe", "alice", "mike"} {
		if _, err := us.Create(ctx, name, name+"@example.com", "hunter22", "user"); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	users, err := us.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("len = %d, want 3", len(users))
	}
	want := []string{"alice", "mike", "zoe"}
	for i, u := range users {
		if u.Username != want[i] {
			t.Errorf("users[%d] = %q, want %q", i, u.Username, want[i])
		}
	}
}

func TestEnsureAdmin(t *testing.T) {
	us := newUserStore(t)
	ctx := context.Background()

	// "admin" is reserved for signup but must work as the seed account.
	u, err := us.EnsureAdmin(ctx, "admin", "changeme1")
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if !u.IsAdmin() {
		t.Errorf("Role = %q, want admin", u.Role)
	}

	// Second call is a no-op and keeps the original account.
	again, err := us.EnsureAdmin(ctx, "admin", "different-password")
	if err != nil {
		t.Fatalf("EnsureAdmin (second call): %v", err)
	}
	if again.ID != u.ID {
		t.Errorf("ID = %q, want %q", again.ID, u.ID)
	}
	if _, err := us.Authenticate(ctx, "admin", "changeme1"); err != nil {
		t.Errorf("original password rejected after second EnsureAdmin: %v", err)
	}
}
