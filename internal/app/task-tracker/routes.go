// Package tasktracker предоставляет маршруты для основного приложения.
package tasktracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/complete"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/create"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/health"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/list"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/read"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/remove"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/task/update"
	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/task-tracker/internal/services/auth"
	taskservice "github.com/magabrotheeeer/task-tracker/internal/services/task"
	"github.com/magabrotheeeer/task-tracker/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, taskService *taskservice.TaskService, db *repository.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/auth/refresh", refresh.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/auth/logout", logout.New(logger, authService).ServeHTTP)
			r.Post("/tasks", create.New(logger, taskService).ServeHTTP)
			r.Get("/tasks", list.New(logger, taskService).ServeHTTP)
			r.Get("/tasks/{id}", read.New(logger, taskService).ServeHTTP)
			r.Put("/tasks/{id}", update.New(logger, taskService).ServeHTTP)
			r.Patch("/tasks/{id}/complete", complete.New(logger, taskService).ServeHTTP)
			r.Delete("/tasks/{id}", remove.New(logger, taskService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
