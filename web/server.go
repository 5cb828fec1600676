// Package web is the thin front end over the scraping pipeline: a login gate
// with a demo credential table and a single preview endpoint that triggers a
// simplified single-listing fetch.
package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"realtor-scraper/config"
	"realtor-scraper/firecrawl"
	"realtor-scraper/utils"
)

// users is the demo credential table. Not a real auth system.
var users = map[string]string{
	"demo":    "demo123",
	"admin":   "admin123",
	"analyst": "analyst2025",
}

// ContentFetcher fetches the rendered text of one listing page. The preview
// endpoint slices its markdown into the raw echo and the content preview.
type ContentFetcher interface {
	Scrape(ctx context.Context, url string, opts firecrawl.ScrapeOptions) (*firecrawl.Document, error)
}

// Server wires the routes, sessions and the fetcher together.
type Server struct {
	cfg      *config.Config
	logger   *utils.Logger
	fetcher  ContentFetcher
	sessions *sessionStore
	router   *mux.Router
}

// NewServer creates a Server with all routes registered.
func NewServer(cfg *config.Config, logger *utils.Logger, fetcher ContentFetcher) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		fetcher:  fetcher,
		sessions: newSessionStore(),
		router:   mux.NewRouter(),
	}

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/login", s.handleLoginForm).Methods(http.MethodGet)
	s.router.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	s.router.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet)
	s.router.HandleFunc("/dashboard", s.requireLogin(s.handleDashboard)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/scrape", s.requireLogin(s.handleScrape)).Methods(http.MethodPost)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP on the configured address until the listener fails.
func (s *Server) Run() error {
	s.logger.Info("[web] Listening on %s", s.cfg.HTTPAddr)
	return http.ListenAndServe(s.cfg.HTTPAddr, s.router)
}

// requireLogin redirects browser requests without a valid session to the
// login page; API paths get a JSON 401 instead.
func (s *Server) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.sessions.currentUser(r); !ok {
			if r.URL.Path == "/api/scrape" {
				writeJSON(w, http.StatusUnauthorized, scrapeResponse{
					Success: false,
					Error:   "authentication required",
				})
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
