package middleware

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskflow/backend/api/transport"
	"github.com/taskflow/backend/domain"
)

// IdentityKey is the request user-value under which the gate stores the
// verified *domain.Identity.
const IdentityKey = "identity"

// SessionVerifier checks a session token and returns the embedded identity.
type SessionVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// RequireSession gates a handler behind a valid session cookie. A missing
// or unverifiable cookie short-circuits with 401; on success the identity
// is attached to the request context for downstream handlers.
func RequireSession(sessions SessionVerifier, cookieName string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := ctx.Request.Header.Cookie(cookieName)
			if len(token) == 0 {
				reject(ctx, "not logged in")
				return
			}

			identity, err := sessions.Verify(string(token))
			if err != nil {
				logger.Warn("session rejected", zap.Error(err))
				reject(ctx, "invalid session")
				return
			}

			ctx.SetUserValue(IdentityKey, identity)
			next(ctx)
		}
	}
}

// Identity returns the identity the gate attached, or nil when the request
// never passed through it.
func Identity(ctx *fasthttp.RequestCtx) *domain.Identity {
	identity, _ := ctx.UserValue(IdentityKey).(*domain.Identity)
	return identity
}

func reject(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.ErrorResponse{Error: message})
	ctx.SetBody(body)
}
