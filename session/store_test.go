package session

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = %v, %v", ok, err)
	}
	if err := store.Set("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := store.Get("k"); !ok || v != "v1" {
		t.Fatalf("Get(k) = %q, %v", v, ok)
	}
	if err := store.Set("k", "v2"); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := store.Get("k"); v != "v2" {
		t.Fatalf("overwrite failed, got %q", v)
	}
	if err := store.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Get("k"); ok {
		t.Fatal("key should be gone after Delete")
	}
	// Deleting an absent key is fine.
	if err := store.Delete("k"); err != nil {
		t.Fatal(err)
	}
}

func TestInstallIDAssignedOnFirstOpen(t *testing.T) {
	store := openTestStore(t)
	id, ok, err := store.Get(KeyInstallID)
	if err != nil || !ok || id == "" {
		t.Fatalf("install id missing: %q, %v, %v", id, ok, err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	sess := NewSession(openTestStore(t))

	if sess.LoggedIn() {
		t.Fatal("fresh store should be logged out")
	}
	if err := sess.Save("tok-abc", "u-1"); err != nil {
		t.Fatal(err)
	}
	if !sess.LoggedIn() {
		t.Fatal("should be logged in after Save")
	}
	if tok, ok := sess.Token(); !ok || tok != "tok-abc" {
		t.Errorf("Token() = %q, %v", tok, ok)
	}
	if id, ok := sess.UserID(); !ok || id != "u-1" {
		t.Errorf("UserID() = %q, %v", id, ok)
	}

	if err := sess.Clear(); err != nil {
		t.Fatal(err)
	}
	if sess.LoggedIn() {
		t.Error("should be logged out after Clear")
	}
	if _, ok := sess.Token(); ok {
		t.Error("token should be gone after Clear")
	}
}

func TestLoggedOutWhenEitherKeyMissing(t *testing.T) {
	store := openTestStore(t)
	sess := NewSession(store)

	if err := store.Set(KeyJWT, "tok-abc"); err != nil {
		t.Fatal(err)
	}
	if sess.LoggedIn() {
		t.Error("token alone must not count as logged in")
	}
	if err := store.Set(KeyUserID, "u-1"); err != nil {
		t.Fatal(err)
	}
	if !sess.LoggedIn() {
		t.Error("both keys present should count as logged in")
	}
}
