package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/taskboards/boards/internal/middleware"
	"github.com/taskboards/boards/internal/setup"
)

func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()
	public := deps.Config.Public

	r.Use(chimw.Recoverer)
	r.Use(deps.Metrics.Middleware)
	// top level so preflight requests are answered before routing
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: public.CorsAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", deps.Handler.Health)
	r.Get("/ready", deps.Handler.Ready)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(mw.SecurityHeaders(mw.APISecurity(public.SecureCookies)))

		h := deps.Handler
		r.Get("/boards", h.GetBoards)
		r.Get("/boards/name={prefix}", h.FindBoardsByName)
		r.Get("/boards/{id}", h.GetBoard)

		w := r.With(limitWrites(deps))
		w.Post("/boards", h.CreateBoard)
		w.Put("/boards/{id}", h.UpdateBoard)
		w.Delete("/boards/{id}", h.DeleteBoard)
	})

	r.Route("/ui", func(r chi.Router) {
		r.Use(mw.SecurityHeaders(mw.UISecurity(public.SecureCookies)))
		r.Use(mw.GenerateCSRFToken(mw.CSRFConfig{SecureCookies: public.SecureCookies}))
		r.Use(mw.ValidateCSRFToken())

		fe := deps.Frontend
		r.Get("/", fe.BoardsGetHandler)
		r.Post("/filter", fe.FilterPostHandler)
		r.Post("/select", fe.SelectPostHandler)
		r.Post("/new", fe.NewPostHandler)

		w := r.With(limitWrites(deps))
		w.Post("/editor/save", fe.SavePostHandler)
		w.Post("/editor/cancel", fe.CancelPostHandler)
		w.Post("/editor/delete", fe.DeletePostHandler)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui", http.StatusFound)
	})

	return r
}

// limitWrites throttles store mutations per client IP when configured.
func limitWrites(deps *setup.Dependencies) func(http.Handler) http.Handler {
	if deps.WriteLimiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw.RateLimit(deps.WriteLimiter, mw.GetIP)
}
