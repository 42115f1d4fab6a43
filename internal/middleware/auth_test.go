package middleware

import (
	"encoding/json"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/taskflow/backend/domain"
)

type stubSessions struct {
	identity *domain.Identity
	err      error
}

func (s *stubSessions) Verify(token string) (*domain.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func gatedRequest(sessions *stubSessions, cookie string) (*fasthttp.RequestCtx, *bool) {
	called := false
	next := func(ctx *fasthttp.RequestCtx) { called = true }
	gate := RequireSession(sessions, "session", nil)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI("/api/tasks")
	if cookie != "" {
		ctx.Request.Header.SetCookie("session", cookie)
	}
	gate(next)(ctx)
	return ctx, &called
}

func errorBody(t *testing.T, ctx *fasthttp.RequestCtx) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode %q: %v", ctx.Response.Body(), err)
	}
	return resp["error"]
}

func TestRequireSessionMissingCookie(t *testing.T) {
	ctx, called := gatedRequest(&stubSessions{}, "")

	if *called {
		t.Error("next handler ran without a session")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
	if got := errorBody(t, ctx); got != "not logged in" {
		t.Errorf("error = %q, want %q", got, "not logged in")
	}
}

func TestRequireSessionBadToken(t *testing.T) {
	ctx, called := gatedRequest(&stubSessions{err: domain.ErrInvalidSession}, "tampered")

	if *called {
		t.Error("next handler ran with an invalid session")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
	if got := errorBody(t, ctx); got != "invalid session" {
		t.Errorf("error = %q, want %q", got, "invalid session")
	}
}

func TestRequireSessionAttachesIdentity(t *testing.T) {
	want := &domain.Identity{SubjectID: "sub-1", Name: "Test", Email: "t@example.com"}
	sessions := &stubSessions{identity: want}

	var got *domain.Identity
	gate := RequireSession(sessions, "session", nil)
	next := func(ctx *fasthttp.RequestCtx) { got = Identity(ctx) }

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetCookie("session", "valid-token")
	gate(next)(ctx)

	if got == nil {
		t.Fatal("next handler never saw an identity")
	}
	if got.SubjectID != want.SubjectID {
		t.Errorf("SubjectID = %q, want %q", got.SubjectID, want.SubjectID)
	}
}

func TestIdentityWithoutGate(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	if got := Identity(ctx); got != nil {
		t.Errorf("Identity() = %+v, want nil outside the gate", got)
	}
}
