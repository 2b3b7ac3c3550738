package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"yulebook/internal/config"
	"yulebook/internal/database"
	"yulebook/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg      *config.Config
	logger   *zerolog.Logger
	db       *database.DB
	menus    *service.MenuService
	bookings *service.BookingService
	gate     *AdminGate
	server   *http.Server
}

func NewServer(cfg *config.Config, logger *zerolog.Logger, db *database.DB, menus *service.MenuService, bookings *service.BookingService) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		menus:    menus,
		bookings: bookings,
		gate:     NewAdminGate(cfg.Admin.Password),
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(s.logger))
	r.Use(newRateLimiter(s.cfg.RateLimit).Middleware)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	r.Get("/menu", s.handleGetMenu)
	r.Post("/bookings", s.handleCreateBooking)
	r.Get("/bookings", s.handleGetBooking)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/auth", s.handleAdminAuth)

		r.Group(func(r chi.Router) {
			r.Use(s.gate.Middleware)

			r.Get("/bookings", s.handleListBookings)
			r.Get("/bookings/export", s.handleExportBookings)
			r.Put("/bookings/{id}", s.handleUpdateBooking)
			r.Delete("/bookings/{id}", s.handleDeleteBooking)

			r.Get("/menu", s.handleListMenu)
			r.Post("/menu", s.handleCreateMenuItem)
			r.Put("/menu/{id}", s.handleUpdateMenuItem)
			r.Delete("/menu/{id}", s.handleDeleteMenuItem)
		})
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info().Int("port", s.cfg.Server.Port).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
