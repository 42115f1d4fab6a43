package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskflow/backend/api/transport"
	"github.com/taskflow/backend/pkg/httpcontext"
	authUC "github.com/taskflow/backend/usecase/auth"
)

// CookieSettings describes the session cookie the auth endpoints manage.
// CrossSite selects SameSite=None;Secure for split-origin deployments;
// local development keeps Lax without Secure.
type CookieSettings struct {
	Name      string
	TTL       time.Duration
	CrossSite bool
}

type AuthHandler struct {
	baseHandler
	uc     *authUC.UseCase
	cookie CookieSettings
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, cookie CookieSettings) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "session"
	}
	if cookie.TTL <= 0 {
		cookie.TTL = 7 * 24 * time.Hour
	}
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		cookie:      cookie,
	}
}

// @Summary Exchange a Google ID token for a session cookie
// @Tags auth
// @Router /api/auth/google [post]
func (h *AuthHandler) GoogleLogin(ctx *fasthttp.RequestCtx) {
	var req transport.GoogleLoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.IDToken == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Error: "missing id token"})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	token, identity, err := h.uc.Login(stdCtx, req.IDToken)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, token)
	h.logger.Info("login", zap.String("user_id", identity.SubjectID))
	h.respondMessage(ctx, http.StatusOK, "login successful")
}

// @Summary Return the identity behind the session cookie
// @Tags auth
// @Router /api/me [get]
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	identity := h.identity(ctx)
	if identity == nil {
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.MeResponse{User: identity})
}

// @Summary Clear the session cookie
// @Tags auth
// @Router /api/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	h.clearSessionCookie(ctx)
	h.respondMessage(ctx, http.StatusOK, "logged out")
}

func (h *AuthHandler) setSessionCookie(ctx *fasthttp.RequestCtx, token string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(h.cookie.Name)
	c.SetValue(token)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetMaxAge(int(h.cookie.TTL.Seconds()))
	h.applySiteMode(c)

	ctx.Response.Header.SetCookie(c)
}

func (h *AuthHandler) clearSessionCookie(ctx *fasthttp.RequestCtx) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(h.cookie.Name)
	c.SetValue("")
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetExpire(fasthttp.CookieExpireDelete)
	h.applySiteMode(c)

	ctx.Response.Header.SetCookie(c)
}

func (h *AuthHandler) applySiteMode(c *fasthttp.Cookie) {
	if h.cookie.CrossSite {
		c.SetSameSite(fasthttp.CookieSameSiteNoneMode)
		c.SetSecure(true)
		return
	}
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
}
