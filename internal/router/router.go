package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskflow/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// New wires the route table. The session gate guards the session check and
// every task route; login and logout are reachable without a session.
func New(handlers Handlers, gate func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.POST("/api/auth/google", handlers.Auth.GoogleLogin)
	r.POST("/api/logout", handlers.Auth.Logout)

	r.GET("/api/me", gate(handlers.Auth.Me))

	r.GET("/api/tasks", gate(handlers.Task.List))
	r.POST("/api/tasks", gate(handlers.Task.Create))
	r.PUT("/api/tasks/{id}", gate(handlers.Task.Update))
	r.DELETE("/api/tasks/{id}", gate(handlers.Task.Delete))

	return r
}
