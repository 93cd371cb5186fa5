// Package web serves the partner-network analytics API.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/akorchagin/partnerpulse/internal/analytics"
	"github.com/akorchagin/partnerpulse/internal/plan"
)

type Server struct {
	router    chi.Router
	generator *analytics.Generator
	tracker   *plan.Tracker
	logger    zerolog.Logger
	now       func() time.Time

	addr            string
	shutdownTimeout time.Duration
}

// Options configures a Server. A nil Now means time.Now.
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
	Generator       *analytics.Generator
	Tracker         *plan.Tracker
	Logger          zerolog.Logger
	Now             func() time.Time
}

func NewServer(opts Options) *Server {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{
		router:          chi.NewRouter(),
		generator:       opts.Generator,
		tracker:         opts.Tracker,
		logger:          opts.Logger,
		now:             now,
		addr:            opts.Addr,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(metricsMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/analytics", s.handleAnalytics)
	r.Get("/api/analytics/leaderboard", s.handleLeaderboard)
	r.Get("/api/analytics/calendar", s.handleCalendar)

	r.Get("/api/partners/{id}", s.handlePartner)
	r.Get("/api/partners/{id}/profile", s.handlePartnerProfile)
	r.Get("/api/partners/{id}/referrals", s.handlePartnerReferrals)

	r.Get("/api/plan", s.handlePlan)
	r.Put("/api/plan", s.handlePlanCommit)
}

// Handler exposes the composed router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until the context is canceled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("server shutdown")
		}
	}()

	s.logger.Info().Str("addr", s.addr).Msg("starting server")

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// requestLogger emits one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
