// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Nicolas-Jorq/budget-app-sub002/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	weight      *app.WeightService
	imports     *app.ImportService
	progress    *app.ProgressService
	insights    *app.InsightService
	authSvc     *app.AuthService
	oidcConfig  OIDCConfig
	webDir      string
	origins     []string
	log         *zap.Logger
	disableAuth bool
}

// Options carry the non-service configuration for the HTTP adapter.
type Options struct {
	WebDir         string
	AllowedOrigins []string
	OIDC           OIDCConfig
}

// New creates a Server wired to the given application services.
func New(ws *app.WeightService, is *app.ImportService, ps *app.ProgressService, ins *app.InsightService, as *app.AuthService, opts Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		weight:     ws,
		imports:    is,
		progress:   ps,
		insights:   ins,
		authSvc:    as,
		oidcConfig: opts.OIDC,
		webDir:     opts.WebDir,
		origins:    opts.AllowedOrigins,
		log:        log,
	}
}

// WithoutAuth disables session validation. Test use only.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(withNoCache)

	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})
		api.Get("/config", s.handleConfig)

		api.Post("/auth/login", s.handleLogin)
		api.Post("/auth/logout", s.handleLogout)
		api.Post("/auth/setup", s.handleSetupUser)
		api.Get("/auth/sso/login", s.handleSSOLogin)
		api.Get("/auth/sso/callback", s.handleSSOCallback)

		api.Group(func(authed chi.Router) {
			authed.Use(s.authMiddleware)

			authed.Post("/weight", s.handleWeightCreate)
			authed.Get("/weight/recent", s.handleWeightRecent)
			authed.Post("/weight/undo-last", s.handleWeightUndoLast)

			authed.Post("/weight/import", s.handleImport)
			authed.Post("/weight/import/preview", s.handleImportPreview)

			authed.Get("/weight/progress", s.handleProgress)
			authed.Get("/weight/insights", s.handleInsights)
		})
	})

	r.NotFound(spaFromDisk(s.webDir).ServeHTTP)

	return r
}
