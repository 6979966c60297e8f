package testutil

import (
	"context"
	"os"

	"github.com/askele/borealis/feed"
	"github.com/askele/borealis/internal/sqlitedb"
	"github.com/askele/borealis/passhash"
	"github.com/askele/borealis/userstore"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireStores opens a throwaway sqlite database with both the users
// and posts tables prepared. The cleanup removes the backing files.
func AcquireStores(ctx context.Context, t TestLog) (*userstore.Store, *feed.Store, func()) {
	dir, err := os.MkdirTemp("", "borealis-tests")
	if err != nil {
		t.Fatal(err)
	}
	db, err := sqlitedb.Open(ctx, dir, "borealis.db")
	if err != nil {
		t.Fatal(err)
	}
	users, err := userstore.New(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	posts, err := feed.New(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	return users, posts, func() {
		if err := db.Close(); err != nil {
			t.Log("unable to close database", err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}

// SeedUser registers a user with a real digest and returns its id.
func SeedUser(ctx context.Context, t TestLog, users *userstore.Store, username, password string) int64 {
	digest, err := passhash.Hash(password)
	if err != nil {
		t.Fatal(err)
	}
	id, err := users.Insert(ctx, username, username+"@example.com", digest, "")
	if err != nil {
		t.Fatal(err)
	}
	return id
}
