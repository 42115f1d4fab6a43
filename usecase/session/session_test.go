package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/taskflow/backend/domain"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := New("test-secret", "taskflow", time.Hour)

	identity := &domain.Identity{
		SubjectID: "google-sub-123",
		Name:      "Test User",
		Email:     "test@example.com",
	}

	token, err := issuer.Issue(identity)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got.SubjectID != identity.SubjectID {
		t.Errorf("SubjectID = %q, want %q", got.SubjectID, identity.SubjectID)
	}
	if got.Name != identity.Name {
		t.Errorf("Name = %q, want %q", got.Name, identity.Name)
	}
	if got.Email != identity.Email {
		t.Errorf("Email = %q, want %q", got.Email, identity.Email)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := New("test-secret", "taskflow", time.Hour)

	// Hand-sign a token whose expiry is already in the past.
	claims := Claims{
		OwnerID: "google-sub-123",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "taskflow",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Verify(token); err != domain.ErrInvalidSession {
		t.Errorf("Verify(expired) error = %v, want ErrInvalidSession", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	identity := &domain.Identity{SubjectID: "google-sub-123"}

	token, err := New("secret-a", "taskflow", time.Hour).Issue(identity)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := New("secret-b", "taskflow", time.Hour).Verify(token); err != domain.ErrInvalidSession {
		t.Errorf("Verify(wrong secret) error = %v, want ErrInvalidSession", err)
	}
}

func TestVerifyWrongIssuer(t *testing.T) {
	identity := &domain.Identity{SubjectID: "google-sub-123"}

	token, err := New("test-secret", "someone-else", time.Hour).Issue(identity)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := New("test-secret", "taskflow", time.Hour).Verify(token); err != domain.ErrInvalidSession {
		t.Errorf("Verify(wrong issuer) error = %v, want ErrInvalidSession", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	issuer := New("test-secret", "taskflow", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(token); err != domain.ErrInvalidSession {
			t.Errorf("Verify(%q) error = %v, want ErrInvalidSession", token, err)
		}
	}
}

func TestIssueRequiresSubject(t *testing.T) {
	issuer := New("test-secret", "taskflow", time.Hour)

	if _, err := issuer.Issue(nil); err == nil {
		t.Error("Issue(nil) error = nil, want error")
	}
	if _, err := issuer.Issue(&domain.Identity{}); err == nil {
		t.Error("Issue(empty subject) error = nil, want error")
	}
}
