package identity

import (
	"context"
	"crypto/rsa"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
)

// Google issues ID tokens under either issuer form.
var googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

// KeyProvider resolves an RSA public key by its key id.
type KeyProvider interface {
	Key(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

type idTokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier validates provider-issued ID tokens against the expected
// audience and extracts the stable subject identity. It has no side effects.
type Verifier struct {
	audience string
	keys     KeyProvider
	logger   *zap.Logger
}

func NewVerifier(audience string, keys KeyProvider, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		audience: audience,
		keys:     keys,
		logger:   logger,
	}
}

// Verify checks signature, issuer and audience. Any failure, including an
// expired or malformed token, comes back as ErrInvalidCredential; the
// underlying cause is only logged.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*domain.Identity, error) {
	claims := &idTokenClaims{}

	token, err := jwt.ParseWithClaims(idToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.keys.Key(ctx, kid)
	})
	if err != nil || !token.Valid {
		v.logger.Warn("id token rejected", zap.Error(err))
		return nil, domain.ErrInvalidCredential
	}

	if !claims.VerifyAudience(v.audience, true) {
		v.logger.Warn("id token audience mismatch")
		return nil, domain.ErrInvalidCredential
	}
	if !v.issuerAllowed(claims.Issuer) {
		v.logger.Warn("id token issuer mismatch", zap.String("issuer", claims.Issuer))
		return nil, domain.ErrInvalidCredential
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidCredential
	}

	return &domain.Identity{
		SubjectID: claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
	}, nil
}

func (v *Verifier) issuerAllowed(issuer string) bool {
	for _, allowed := range googleIssuers {
		if issuer == allowed {
			return true
		}
	}
	return false
}
