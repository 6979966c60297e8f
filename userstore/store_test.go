package userstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/askele/borealis/internal/testutil"
	"github.com/askele/borealis/userstore"
)

func TestInsertAndFind(t *testing.T) {
	ctx := context.Background()
	users, _, cleanup := testutil.AcquireStores(ctx, t)
	defer cleanup()

	id, err := users.Insert(ctx, "astrid", "astrid@example.com", "$2a$10$fakedigest", "")
	if err != nil {
		t.Fatal(err)
	}
	u, err := users.FindByUsername(ctx, "astrid")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != id || u.Email != "astrid@example.com" || u.PasswordDigest != "$2a$10$fakedigest" {
		t.Fatalf("stored user does not round-trip, got %+v", u)
	}
}

func TestFindUnknownUser(t *testing.T) {
	ctx := context.Background()
	users, _, cleanup := testutil.AcquireStores(ctx, t)
	defer cleanup()

	_, err := users.FindByUsername(ctx, "nobody")
	var notFound userstore.NotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if notFound.Username != "nobody" {
		t.Fatalf("NotFound should carry the username, got %+v", notFound)
	}
}

func TestDuplicateUsernameConflicts(t *testing.T) {
	ctx := context.Background()
	users, _, cleanup := testutil.AcquireStores(ctx, t)
	defer cleanup()

	if _, err := users.Insert(ctx, "astrid", "astrid@example.com", "d1", ""); err != nil {
		t.Fatal(err)
	}
	_, err := users.Insert(ctx, "astrid", "other@example.com", "d2", "")
	var conflict userstore.Conflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected Conflict for duplicate username, got %v", err)
	}
	_, err = users.Insert(ctx, "other", "astrid@example.com", "d3", "")
	if !errors.As(err, &conflict) {
		t.Fatalf("expected Conflict for duplicate email, got %v", err)
	}
}

func TestUpdateImage(t *testing.T) {
	ctx := context.Background()
	users, _, cleanup := testutil.AcquireStores(ctx, t)
	defer cleanup()

	id, err := users.Insert(ctx, "astrid", "astrid@example.com", "d", "")
	if err != nil {
		t.Fatal(err)
	}
	img, err := users.UpdateImage(ctx, id, "data:image/png;base64,xyz")
	if err != nil {
		t.Fatal(err)
	}
	if img != "data:image/png;base64,xyz" {
		t.Fatalf("UpdateImage should return the stored value, got %v", img)
	}
	u, err := users.FindByUsername(ctx, "astrid")
	if err != nil {
		t.Fatal(err)
	}
	if u.Image != img {
		t.Fatal("image not persisted")
	}

	var notFound userstore.NotFound
	if _, err := users.UpdateImage(ctx, 9999, "x"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFound for unknown id, got %v", err)
	}
}
