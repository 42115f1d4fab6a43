package identity

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskflow/backend/repository"
)

// CertFetcher retrieves the provider's current signing certificates.
type CertFetcher interface {
	FetchCerts(ctx context.Context) (map[string]string, error)
}

// KeySource fetches Google's federated signing certificates. The endpoint
// serves a JSON object mapping key ids to PEM-encoded X.509 certificates.
type KeySource struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
}

func NewKeySource(url string, timeout time.Duration) *KeySource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KeySource{
		client:  &fasthttp.Client{},
		url:     url,
		timeout: timeout,
	}
}

func (s *KeySource) FetchCerts(ctx context.Context) (map[string]string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(s.url)

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := s.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("cert endpoint returned status %d", resp.StatusCode())
	}

	var certs map[string]string
	if err := json.Unmarshal(resp.Body(), &certs); err != nil {
		return nil, err
	}
	if len(certs) == 0 {
		return nil, fmt.Errorf("cert endpoint returned no keys")
	}
	return certs, nil
}

// CachedKeys resolves signing keys by kid, serving from the cache and
// falling back to a synchronous fetch on a miss or an unknown kid (Google
// rotates keys, so an unknown kid usually means the cache is stale).
type CachedKeys struct {
	source CertFetcher
	cache  repository.SigningKeyCache
	logger *zap.Logger

	mu     sync.Mutex
	parsed map[string]*rsa.PublicKey
}

func NewCachedKeys(source CertFetcher, cache repository.SigningKeyCache, logger *zap.Logger) *CachedKeys {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedKeys{
		source: source,
		cache:  cache,
		logger: logger,
		parsed: make(map[string]*rsa.PublicKey),
	}
}

// Key returns the RSA public key for the given kid.
func (k *CachedKeys) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	k.mu.Lock()
	if key, ok := k.parsed[kid]; ok {
		k.mu.Unlock()
		return key, nil
	}
	k.mu.Unlock()

	certs, err := k.cache.Get(ctx)
	if err != nil {
		if err != repository.ErrKeysNotCached {
			k.logger.Warn("signing key cache read failed", zap.Error(err))
		}
		certs = nil
	}

	if _, ok := certs[kid]; !ok {
		if certs, err = k.refresh(ctx); err != nil {
			return nil, err
		}
	}

	pemCert, ok := certs[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
	if err != nil {
		return nil, err
	}

	k.mu.Lock()
	k.parsed[kid] = key
	k.mu.Unlock()
	return key, nil
}

// Refresh re-fetches the certificate set and rewrites the cache. The
// background refresher calls this on a schedule.
func (k *CachedKeys) Refresh(ctx context.Context) error {
	_, err := k.refresh(ctx)
	return err
}

func (k *CachedKeys) refresh(ctx context.Context) (map[string]string, error) {
	certs, err := k.source.FetchCerts(ctx)
	if err != nil {
		return nil, err
	}

	// Keys rotated; drop parsed entries that no longer exist.
	k.mu.Lock()
	for kid := range k.parsed {
		if _, ok := certs[kid]; !ok {
			delete(k.parsed, kid)
		}
	}
	k.mu.Unlock()

	if err := k.cache.Put(ctx, certs); err != nil {
		k.logger.Warn("signing key cache write failed", zap.Error(err))
	}
	return certs, nil
}
