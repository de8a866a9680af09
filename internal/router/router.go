// Package router wires HTTP routes to handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Soumyadip04/MindMesh/internal/config"
	"github.com/Soumyadip04/MindMesh/internal/handler"
	"github.com/Soumyadip04/MindMesh/internal/middleware"
	"github.com/Soumyadip04/MindMesh/internal/model"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Register/login/refresh/logout
// live under /v1/auth and need no session; /v1/me requires a valid access
// token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleStudent, model.RoleFaculty, model.RoleAdmin))
	auth.GET("/me", a.Me)
}

// RegisterSchedule registers the merged-schedule endpoints. Reads are cached
// in Redis; writes go through the rate limiter. Any authenticated role may
// view the schedule and book a free classroom.
func RegisterSchedule(e *echo.Echo, s *handler.ScheduleHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1/schedule")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleStudent, model.RoleFaculty, model.RoleAdmin))

	g.GET("", s.Get, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	g.POST("", s.Post, limiter)
	g.DELETE("", s.Delete, limiter)
}

// RegisterBookings registers the admin CRUD surface over bookings.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.GET("", b.List)
	g.GET("/:id", b.Get)
	g.POST("", b.Create)
	g.PUT("/:id", b.Update)
	g.DELETE("/:id", b.Cancel)
}

// RegisterNotes registers the notes-sharing endpoints. Everyone
// authenticated may browse; publishing and deleting require FACULTY or
// ADMIN.
func RegisterNotes(e *echo.Echo, n *handler.NoteHandler, jwtSecret string) {
	g := e.Group("/v1/notes")
	g.Use(middleware.JWTAuth(jwtSecret))

	g.GET("", n.List, middleware.RequireRole(model.RoleStudent, model.RoleFaculty, model.RoleAdmin))
	g.POST("", n.Create, middleware.RequireRole(model.RoleFaculty, model.RoleAdmin))
	g.DELETE("/:id", n.Delete, middleware.RequireRole(model.RoleFaculty, model.RoleAdmin))
}
