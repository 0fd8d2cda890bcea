package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/camuig/clac/internal/ai"
	"github.com/camuig/clac/internal/config"
	"github.com/camuig/clac/internal/logger"
	"github.com/camuig/clac/internal/stocks"
	"github.com/camuig/clac/internal/storage"
	"github.com/camuig/clac/internal/telegram"
	"github.com/camuig/clac/internal/upbit"
	"github.com/camuig/clac/internal/yahoo"
)

type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	repo       *storage.Repository
	upbit      *upbit.Client
	yahoo      *yahoo.Client
	catalog    *stocks.Catalog
	notifier   *telegram.Notifier
	advisor    *ai.Advisor
	config     *config.Config
	logger     *logger.Logger
}

func NewServer(
	repo *storage.Repository,
	upbitClient *upbit.Client,
	yahooClient *yahoo.Client,
	catalog *stocks.Catalog,
	notifier *telegram.Notifier,
	advisor *ai.Advisor,
	cfg *config.Config,
	log *logger.Logger,
) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		repo:     repo,
		upbit:    upbitClient,
		yahoo:    yahooClient,
		catalog:  catalog,
		notifier: notifier,
		advisor:  advisor,
		config:   cfg,
		logger:   log.With("component", "web"),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second, // explain waits on DeepSeek
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "port", s.config.Web.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("web server shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Web.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/calc", func(r chi.Router) {
			r.Post("/averaging-down", s.handleAveragingDown)
			r.Post("/target-average", s.handleTargetAverage)
			r.Get("/profit", s.handleProfit)
			r.Post("/profit", s.handleProfit)
			r.Post("/profit/share", s.handleShareProfit)
		})

		r.Route("/upbit", func(r chi.Router) {
			r.Get("/ticker", s.handleUpbitTicker)
			r.Get("/markets", s.handleUpbitMarkets)
		})

		r.Route("/stocks", func(r chi.Router) {
			r.Get("/price", s.handleStockPrice)
			r.Get("/prices", s.handleStockPrices)
			r.Get("/search", s.handleStockSearch)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", s.handleListHistory)
			r.Delete("/", s.handleClearHistory)
			r.Delete("/{id}", s.handleRemoveHistory)
			r.Post("/{id}/share", s.handleShareHistory)
			r.Post("/{id}/explain", s.handleExplainHistory)
		})
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
