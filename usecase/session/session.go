package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/taskflow/backend/domain"
)

// Claims is the signed session payload. Validity is self-contained: there
// is no server-side session state or revocation list.
type Claims struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies compact signed session credentials.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func New(secret, issuer string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Issuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// TTL returns the configured session lifetime, used for the cookie MaxAge.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue embeds the verified identity in an HMAC-signed token with a fixed
// expiry.
func (i *Issuer) Issue(identity *domain.Identity) (string, error) {
	if identity == nil || identity.SubjectID == "" {
		return "", domain.ErrInvalidPayload
	}

	now := time.Now()
	claims := Claims{
		OwnerID: identity.SubjectID,
		Name:    identity.Name,
		Email:   identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
// Every failure mode collapses to ErrInvalidSession.
func (i *Issuer) Verify(token string) (*domain.Identity, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidSession
	}
	if i.issuer != "" && !claims.VerifyIssuer(i.issuer, true) {
		return nil, domain.ErrInvalidSession
	}
	if claims.OwnerID == "" {
		return nil, domain.ErrInvalidSession
	}

	return &domain.Identity{
		SubjectID: claims.OwnerID,
		Name:      claims.Name,
		Email:     claims.Email,
	}, nil
}
