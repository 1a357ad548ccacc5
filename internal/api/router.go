package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/postboard/postboard/internal/api/handlers"
	"github.com/postboard/postboard/internal/config"
	"github.com/postboard/postboard/internal/middleware"
	"github.com/postboard/postboard/internal/services"
)

// NewRouter wires the HTTP surface. The auth gate is applied per-route: only
// logout and delete-user sit behind it, matching the upstream exposure; the
// remaining user routes are a public profile API. Changing that is a routing
// decision, not a code change elsewhere.
func NewRouter(cfg config.Config, authMW *middleware.AuthMiddleware, us *services.AuthService, ps *services.PostService, cs *services.CommentService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	uh := handlers.NewUserHandler(us)
	ph := handlers.NewPostHandler(ps)
	ch := handlers.NewCommentHandler(cs)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", uh.Register)
		r.Post("/login", uh.Login)
		r.Post("/refresh", uh.Refresh)
		r.With(authMW.Auth).Post("/logout", uh.Logout)

		r.Get("/", uh.List)
		r.Get("/{userId}", uh.GetByID)
		r.Put("/{userId}", uh.Update)
		r.With(authMW.Auth).Delete("/{userId}", uh.Delete)
	})

	r.Route("/post", func(r chi.Router) {
		r.Get("/", ph.List)
		r.Get("/{postId}", ph.GetByID)
		r.Get("/{postId}/comments", ph.Comments)
		r.Post("/", ph.Create)
		r.Put("/{postId}", ph.Update)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/", ch.List)
		r.Get("/{commentId}", ch.GetByID)
		r.Post("/", ch.Create)
		r.Put("/{commentId}", ch.Update)
		r.Delete("/{commentId}", ch.Delete)
	})

	return r
}
