package repository

import (
	"context"
	"errors"
)

// ErrKeysNotCached signals a cache miss on the signing key set.
var ErrKeysNotCached = errors.New("signing keys not cached")

// SigningKeyCache stores the identity provider's federated signing
// certificates (kid -> PEM) so token verification does not hit the provider
// on every login.
type SigningKeyCache interface {
	Get(ctx context.Context) (map[string]string, error)
	Put(ctx context.Context, keys map[string]string) error
}
