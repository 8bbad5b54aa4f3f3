package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"
)

type Options struct {
	RequestTimeout    time.Duration
	CORSOrigins       []string
	RateLimitRequests int // 0 disables the /api limiter
	RateLimitWindow   time.Duration
}

type Server struct {
	mux   *chi.Mux
	limit func(http.Handler) http.Handler
}

func New(opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	m := chi.NewRouter()

	// All middlewares go here (before any routes are added)
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"ETag", "Location"},
		MaxAge:         300,
	}))
	m.Use(Timeout(opts.RequestTimeout))
	m.Use(Instrument(log.Logger))

	s := &Server{mux: m, limit: func(next http.Handler) http.Handler { return next }}
	if opts.RateLimitRequests > 0 && opts.RateLimitWindow > 0 {
		s.limit = httprate.LimitByIP(opts.RateLimitRequests, opts.RateLimitWindow)
	}
	return s
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
