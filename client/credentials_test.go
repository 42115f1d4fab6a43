package client

import (
	"path/filepath"
	"testing"
)

func TestCredentialStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := OpenCredentialStore(path)
	if err != nil {
		t.Fatalf("OpenCredentialStore() error = %v", err)
	}
	defer store.Close()

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "" {
		t.Errorf("Token() = %q, want empty before save", token)
	}

	if err := store.Save("signed-session-token"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	token, err = store.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "signed-session-token" {
		t.Errorf("Token() = %q, want saved token", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	token, err = store.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "" {
		t.Errorf("Token() = %q, want empty after clear", token)
	}
}

func TestCredentialStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := OpenCredentialStore(path)
	if err != nil {
		t.Fatalf("OpenCredentialStore() error = %v", err)
	}
	if err := store.Save("persisted"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	store, err = OpenCredentialStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer store.Close()

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "persisted" {
		t.Errorf("Token() = %q, want token from the previous session", token)
	}
}

func TestCredentialStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.db")

	store, err := OpenCredentialStore(path)
	if err != nil {
		t.Fatalf("OpenCredentialStore() error = %v", err)
	}
	defer store.Close()

	if err := store.Save("x"); err != nil {
		t.Errorf("Save() error = %v", err)
	}
}
