// Package itineraryplanner предоставляет маршруты для основного приложения.
package itineraryplanner

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/itinerary-planner/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/handlers/itinerary/fetch"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/handlers/itinerary/remove"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/handlers/itinerary/save"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/handlers/pricing/quote"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/itinerary-planner/internal/services/auth"
	itineraryservice "github.com/magabrotheeeer/itinerary-planner/internal/services/itinerary"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, itineraryService *itineraryservice.ItineraryService, authService *authservice.AuthService, sessionTTL time.Duration) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService, sessionTTL).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService, sessionTTL).ServeHTTP)
		r.Post("/auth/logout", logout.New(logger).ServeHTTP)
		r.Get("/auth/me", me.New(logger, authService).ServeHTTP)

		// Группа с проверкой сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/itinerary", fetch.New(logger, itineraryService).ServeHTTP)
			r.Post("/itinerary", save.New(logger, itineraryService).ServeHTTP)
			r.Delete("/itinerary", remove.New(logger, itineraryService).ServeHTTP)
			r.Post("/pricing/quote", quote.New(logger).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
