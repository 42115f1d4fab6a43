package client

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	credentialsBucket = []byte("auth")
	sessionTokenKey   = []byte("session_token")
)

// CredentialStore persists the session token between CLI invocations in a
// small local Bolt file, the way a browser keeps the session cookie.
type CredentialStore struct {
	db *bolt.DB
}

// DefaultCredentialPath is the store location under the user's home
// directory.
func DefaultCredentialPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".taskflow", "session.db")
}

// OpenCredentialStore initializes the Bolt file and ensures the bucket
// exists.
func OpenCredentialStore(path string) (*CredentialStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(credentialsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &CredentialStore{db: db}, nil
}

// Token returns the saved session token, or "" when none is stored.
func (s *CredentialStore) Token() (string, error) {
	if s == nil || s.db == nil {
		return "", bolt.ErrDatabaseNotOpen
	}
	var token string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(credentialsBucket).Get(sessionTokenKey); v != nil {
			token = string(v)
		}
		return nil
	})
	return token, err
}

// Save stores the session token.
func (s *CredentialStore) Save(token string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(credentialsBucket).Put(sessionTokenKey, []byte(token))
	})
}

// Clear removes the stored token (logout).
func (s *CredentialStore) Clear() error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(credentialsBucket).Delete(sessionTokenKey)
	})
}

// Close closes the underlying Bolt file.
func (s *CredentialStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
