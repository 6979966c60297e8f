package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func acquireStore(t *testing.T) Store {
	t.Helper()
	store, err := NewMemoryStore(time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := acquireStore(t)
	token, err := store.Create(ctx, Session{UserID: 7, Username: "test", ProfileImage: "data:image/png;base64,aaa"})
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("token should not be empty")
	}
	sess, found, err := store.Get(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("freshly created session should be found")
	}
	if sess.Username != "test" || sess.UserID != 7 {
		t.Fatalf("session does not round-trip, got %+v", sess)
	}
}

func TestGetAbsentToken(t *testing.T) {
	ctx := context.Background()
	store := acquireStore(t)
	_, found, err := store.Get(ctx, "never-issued")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("unknown token must read as absent")
	}
}

func TestTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	store := acquireStore(t)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := store.Create(ctx, Session{UserID: int64(i), Username: "u"})
		if err != nil {
			t.Fatal(err)
		}
		if seen[token] {
			t.Fatalf("token %v issued twice", token)
		}
		seen[token] = true
	}
}

func TestUpdateProfileImage(t *testing.T) {
	ctx := context.Background()
	store := acquireStore(t)
	token, err := store.Create(ctx, Session{UserID: 1, Username: "test", ProfileImage: "old"})
	if err != nil {
		t.Fatal(err)
	}
	updated, err := store.UpdateProfileImage(ctx, token, "data:image/png;base64,bbb")
	if err != nil {
		t.Fatal(err)
	}
	if updated.ProfileImage != "data:image/png;base64,bbb" {
		t.Fatalf("image not updated, got %+v", updated)
	}
	if updated.Username != "test" || updated.UserID != 1 {
		t.Fatalf("update must not touch the rest of the record, got %+v", updated)
	}
	sess, found, err := store.Get(ctx, token)
	if err != nil || !found {
		t.Fatalf("session lost after update: %v %v", found, err)
	}
	if sess.ProfileImage != "data:image/png;base64,bbb" {
		t.Fatal("update not visible to subsequent reads")
	}
}

func TestUpdateProfileImageAbsentToken(t *testing.T) {
	ctx := context.Background()
	store := acquireStore(t)
	_, err := store.UpdateProfileImage(ctx, "never-issued", "img")
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := acquireStore(t)
	token, err := store.Create(ctx, Session{UserID: 1, Username: "test"})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Destroy(ctx, token); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := store.Get(ctx, token); found {
		t.Fatal("destroyed session should be absent")
	}
	// second destroy is a no-op, not an error
	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("second destroy should be a no-op, got %v", err)
	}
	if err := store.Destroy(ctx, "never-issued"); err != nil {
		t.Fatalf("destroying an unknown token should be a no-op, got %v", err)
	}
}

func TestDestroyDuringUpdateStaysDestroyed(t *testing.T) {
	// whatever order an update and a destroy land in, once both are
	// done the token must be gone: either the destroy ran last, or it
	// ran first and the update saw ErrNoSession. An update write must
	// never bring a destroyed session back.
	ctx := context.Background()
	store := acquireStore(t)
	for i := 0; i < 200; i++ {
		token, err := store.Create(ctx, Session{UserID: 1, Username: "test"})
		if err != nil {
			t.Fatal(err)
		}
		var wg sync.WaitGroup
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, err := store.UpdateProfileImage(ctx, token, "new")
			if err != nil && !errors.Is(err, ErrNoSession) {
				t.Error(err)
			}
		}()
		go func() {
			defer wg.Done()
			<-start
			if err := store.Destroy(ctx, token); err != nil {
				t.Error(err)
			}
		}()
		close(start)
		wg.Wait()
		if _, found, _ := store.Get(ctx, token); found {
			t.Fatal("session survived its own destroy")
		}
	}
}

func TestSessionsExpire(t *testing.T) {
	// bigcache evicts on its clean window ticker, so sleeping well
	// past the life window is enough to observe the TTL policy.
	store, err := NewMemoryStore(time.Second)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	token, err := store.Create(ctx, Session{UserID: 1, Username: "test"})
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(3 * time.Second)
	if _, found, _ := store.Get(ctx, token); found {
		t.Fatal("session should have expired")
	}
}
