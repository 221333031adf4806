package api

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avelarm/taskbox-be/internal/api/handlers"
	"github.com/avelarm/taskbox-be/internal/auth"
	"github.com/avelarm/taskbox-be/internal/metrics"
	"github.com/avelarm/taskbox-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	db *sql.DB,
	tokens *auth.TokenManager,
	userService services.UserServiceProvider,
	itemService services.ItemServiceProvider,
	m *metrics.Metrics,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	itemHandler := handlers.NewItemHandler(itemService)
	healthHandler := handlers.NewHealthHandler(db)

	// Public routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Method("GET", "/metrics", m.Handler())

	// Protected routes: the auth middleware runs before any handler and
	// short-circuits on missing or invalid tokens.
	r.Route("/api", func(r chi.Router) {
		r.Use(tokens.Middleware())

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemHandler.List)
			r.Post("/", itemHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", itemHandler.Get)
				r.Put("/", itemHandler.Update)
				r.Delete("/", itemHandler.Delete)
			})
		})
	})

	return r
}
