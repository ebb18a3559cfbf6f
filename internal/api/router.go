package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"github.com/masteryhub/mastery-hub-be/internal/api/handlers"
	"github.com/masteryhub/mastery-hub-be/internal/api/respond"
	"github.com/masteryhub/mastery-hub-be/internal/auth"
	"github.com/masteryhub/mastery-hub-be/internal/config"
	"github.com/masteryhub/mastery-hub-be/internal/services"
	"github.com/masteryhub/mastery-hub-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	db *bun.DB,
	hub *websocket.Hub,
	userService services.UserServiceProvider,
	activityService services.ActivityServiceProvider,
	tokens *auth.TokenManager,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, activityService, tokens)
	activityHandler := handlers.NewActivityHandler(activityService)
	systemHandler := handlers.NewSystemHandler(db)
	wsHandler := handlers.NewWebSocketHandler(hub)

	guard := auth.NewMiddleware(tokens, userService)

	r.Get("/", systemHandler.Root)
	r.Get("/health", systemHandler.Health)

	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAuth)
		r.Get("/me", userHandler.Me)

		r.Group(func(r chi.Router) {
			r.Use(guard.RequireAdmin)
			r.Get("/users", userHandler.List)
			r.Put("/users/{id}/role", userHandler.UpdateRole)
			r.Delete("/users/{id}", userHandler.Delete)

			r.Get("/logs", activityHandler.GetRecent)
			r.Get("/system/stats", systemHandler.Stats)
			r.Get("/ws", wsHandler.Serve)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusNotFound, map[string]string{
			"error": "Not found",
			"path":  r.URL.Path,
		})
	})

	return r
}

// recoverer is the outermost failure boundary: an unrecovered panic becomes a
// generic 500 instead of tearing down the process. The panic value stays in
// the log.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("Recovered from panic in handler")
				respond.JSON(w, http.StatusInternalServerError, map[string]string{
					"error": "Internal server error",
					"path":  r.URL.Path,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Request handled")
	})
}
