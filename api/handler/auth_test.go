package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/taskflow/backend/domain"
	authUC "github.com/taskflow/backend/usecase/auth"
)

type stubVerifier struct {
	identity *domain.Identity
	err      error
}

func (v *stubVerifier) Verify(ctx context.Context, idToken string) (*domain.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

type stubIssuer struct {
	token string
}

func (i *stubIssuer) Issue(identity *domain.Identity) (string, error) {
	return i.token, nil
}

func newAuthHandler(verifier *stubVerifier, cookie CookieSettings) *AuthHandler {
	uc := authUC.New(verifier, &stubIssuer{token: "signed-session-token"}, nil, nil)
	return NewAuthHandler(uc, nil, nil, cookie)
}

func sessionCookie(t *testing.T, ctx *fasthttp.RequestCtx) *fasthttp.Cookie {
	t.Helper()
	c := fasthttp.AcquireCookie()
	c.SetKey("session")
	if !ctx.Response.Header.Cookie(c) {
		t.Fatal("no session cookie in response")
	}
	return c
}

func TestGoogleLoginSetsCookie(t *testing.T) {
	verifier := &stubVerifier{identity: &domain.Identity{SubjectID: "sub-1", Name: "Test", Email: "t@example.com"}}
	h := newAuthHandler(verifier, CookieSettings{TTL: 7 * 24 * time.Hour})

	ctx := newRequestCtx(http.MethodPost, "/api/auth/google", []byte(`{"idToken":"some-google-token"}`))
	h.GoogleLogin(ctx)

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var resp map[string]string
	decodeBody(t, ctx, &resp)
	if resp["message"] != "login successful" {
		t.Errorf("message = %q, want %q", resp["message"], "login successful")
	}

	c := sessionCookie(t, ctx)
	defer fasthttp.ReleaseCookie(c)
	if got := string(c.Value()); got != "signed-session-token" {
		t.Errorf("cookie value = %q, want issued token", got)
	}
	if !c.HTTPOnly() {
		t.Error("cookie is not HTTP-only")
	}
	if c.SameSite() != fasthttp.CookieSameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax for same-site deployments", c.SameSite())
	}
	if c.Secure() {
		t.Error("Secure set without cross-site mode")
	}
	wantMaxAge := int((7 * 24 * time.Hour).Seconds())
	if c.MaxAge() != wantMaxAge {
		t.Errorf("MaxAge = %d, want %d", c.MaxAge(), wantMaxAge)
	}
}

func TestGoogleLoginCrossSiteCookie(t *testing.T) {
	verifier := &stubVerifier{identity: &domain.Identity{SubjectID: "sub-1"}}
	h := newAuthHandler(verifier, CookieSettings{CrossSite: true})

	ctx := newRequestCtx(http.MethodPost, "/api/auth/google", []byte(`{"idToken":"tok"}`))
	h.GoogleLogin(ctx)

	c := sessionCookie(t, ctx)
	defer fasthttp.ReleaseCookie(c)
	if c.SameSite() != fasthttp.CookieSameSiteNoneMode {
		t.Errorf("SameSite = %v, want None in cross-site mode", c.SameSite())
	}
	if !c.Secure() {
		t.Error("cross-site cookie must be Secure")
	}
}

func TestGoogleLoginMissingToken(t *testing.T) {
	h := newAuthHandler(&stubVerifier{}, CookieSettings{})

	for _, body := range []string{`{}`, `{"idToken":""}`, `not json`} {
		ctx := newRequestCtx(http.MethodPost, "/api/auth/google", []byte(body))
		h.GoogleLogin(ctx)
		if ctx.Response.StatusCode() != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, ctx.Response.StatusCode())
		}
	}
}

func TestGoogleLoginInvalidToken(t *testing.T) {
	h := newAuthHandler(&stubVerifier{err: domain.ErrInvalidCredential}, CookieSettings{})

	ctx := newRequestCtx(http.MethodPost, "/api/auth/google", []byte(`{"idToken":"forged"}`))
	h.GoogleLogin(ctx)

	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
}

func TestMe(t *testing.T) {
	h := newAuthHandler(&stubVerifier{}, CookieSettings{})

	ctx := authed(newRequestCtx(http.MethodGet, "/api/me", nil), "sub-1")
	h.Me(ctx)

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
	}
	var resp struct {
		User struct {
			OwnerID string `json:"ownerId"`
			Name    string `json:"name"`
			Email   string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, ctx, &resp)
	if resp.User.OwnerID != "sub-1" {
		t.Errorf("user.ownerId = %q, want %q", resp.User.OwnerID, "sub-1")
	}
}

func TestMeWithoutIdentity(t *testing.T) {
	h := newAuthHandler(&stubVerifier{}, CookieSettings{})

	ctx := newRequestCtx(http.MethodGet, "/api/me", nil)
	h.Me(ctx)

	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newAuthHandler(&stubVerifier{}, CookieSettings{})

	ctx := newRequestCtx(http.MethodPost, "/api/logout", nil)
	h.Logout(ctx)

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
	}
	var resp map[string]string
	decodeBody(t, ctx, &resp)
	if resp["message"] != "logged out" {
		t.Errorf("message = %q, want %q", resp["message"], "logged out")
	}

	c := sessionCookie(t, ctx)
	defer fasthttp.ReleaseCookie(c)
	if len(c.Value()) != 0 {
		t.Errorf("cookie value = %q, want empty", c.Value())
	}
	if !strings.Contains(strings.ToLower(c.String()), "expires") {
		t.Errorf("cookie %q carries no expiry", c.String())
	}
}
