package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"

	"github.com/investmatch/investmatch"
	apimiddleware "github.com/investmatch/investmatch/infrastructure/api/middleware"
	"github.com/investmatch/investmatch/infrastructure/api/routes"
	mcpinternal "github.com/investmatch/investmatch/internal/mcp"
)

// APIServer provides an HTTP API backed by an investmatch Client.
type APIServer struct {
	client       *investmatch.Client
	corsOrigins  []string
	version      string
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given Client.
// corsOrigins lists the browser origins allowed to call the API with
// credentials; an empty list allows the client's site URL only.
func NewAPIServer(client *investmatch.Client, corsOrigins []string, version string) *APIServer {
	if len(corsOrigins) == 0 && client.SiteURL() != "" {
		corsOrigins = []string{client.SiteURL()}
	}
	return &APIServer{
		client:      client,
		corsOrigins: corsOrigins,
		version:     version,
		logger:      client.Logger(),
	}
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call MountRoutes().
// If not called, ListenAndServe creates a default router with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", apimiddleware.CorrelationIDHeader},
		ExposedHeaders:   []string{apimiddleware.CorrelationIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", a.health)
	router.Get("/healthz", a.health)

	authRouter := routes.NewAuthRouter(c.Auth, c.SiteURL(), a.logger)

	router.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Use(apimiddleware.Session(c.Auth, a.logger))

		r.Mount("/auth", authRouter.Routes())
		r.Mount("/startups", routes.NewStartupsRouter(c.Directory, a.logger).Routes())
		r.Mount("/investors", routes.NewInvestorsRouter(c.Directory, a.logger).Routes())
		r.Mount("/pipeline", routes.NewPipelineRouter(c.Pipeline, c.Directory, a.logger).Routes())
		r.Mount("/pitches", routes.NewPitchesRouter(c.Pitches, a.logger).Routes())
		r.Mount("/notifications", routes.NewNotificationsRouter(c.Notifications, a.logger).Routes())
		r.Mount("/razorpay", routes.NewPaymentsRouter(c.Payments, c.RazorpayKeyID(), a.logger).Routes())
		r.Mount("/admin", routes.NewAdminRouter(c.Admin, a.logger).Routes())
	})

	// The identity provider redirects the browser here after email
	// confirmation and OAuth sign-in.
	router.With(chimiddleware.Timeout(30*time.Second)).Get("/auth/callback", authRouter.Callback)

	if dir := c.FilesDir(); dir != "" {
		router.Handle("/files/*", http.StripPrefix("/files", fileServer(dir)))
	}

	// MCP uses streaming responses and manages its own session state via
	// response headers, which chi's Timeout middleware breaks.
	mcpSrv := mcpinternal.NewServer(c.Directory, a.version, a.logger)
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
}

func (a *APIServer) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		a.logger.WarnContext(r.Context(), "health check failed", slog.String("error", err.Error()))
		apimiddleware.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// fileServer serves locally stored uploads without directory listings.
func fileServer(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(r.URL.Path, "/")))
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	srv := NewServer(addr, a.logger)
	a.server = &srv

	if a.routerCalled && a.router != nil {
		srv.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(srv.Router())
	}

	if err := srv.Start(); err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.Router()
		a.MountRoutes()
	}
	return a.router
}
