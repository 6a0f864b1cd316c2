package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/car4me/car4me/internal/database"
	"github.com/car4me/car4me/internal/web/handlers"
	"github.com/car4me/car4me/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	db           *database.DB
	port         int
	bind         string
	allowedNet   *net.IPNet
	legacyCompat bool
	router       *chi.Mux
	handlers     *handlers.Handlers
}

// NewServer creates a new web server
func NewServer(db *database.DB, port int, bind string, allowedNet *net.IPNet, legacyCompat bool) *Server {
	s := &Server{
		db:           db,
		port:         port,
		bind:         bind,
		allowedNet:   allowedNet,
		legacyCompat: legacyCompat,
		router:       chi.NewRouter(),
	}

	s.setupRoutes()

	return s
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router

	// Unexpected failures answered 405 on the original API. The corrected
	// mapping (500) is the default; --legacy-compat restores the old one.
	catchAll := http.StatusInternalServerError
	if s.legacyCompat {
		catchAll = http.StatusMethodNotAllowed
	}

	r.Use(chimiddleware.RequestID)
	// AllowSubnet must come BEFORE RealIP so we check the actual connection source
	r.Use(middleware.AllowSubnet(s.allowedNet))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover(catchAll))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	h := handlers.New(s.db, s.legacyCompat)
	s.handlers = h

	r.Get("/health", h.Health)

	r.Route("/clientes", func(r chi.Router) {
		r.Get("/", h.ClientList)
		r.Post("/", h.ClientCreate)
		r.Get("/{id_cliente}", h.ClientGet)
		r.Put("/{id_cliente}", h.ClientUpdate)
		r.Delete("/{id_cliente}", h.ClientDelete)

		r.Route("/{id_cliente}/favoritos/{id_veiculo}", func(r chi.Router) {
			r.Delete("/", h.FavoriteDelete)
			r.Put("/", h.FavoriteRepointVehicle)
			r.Put("/cliente", h.FavoriteRepointClient)
		})
	})

	r.Route("/veiculos", func(r chi.Router) {
		r.Get("/", h.VehicleList)
		r.Post("/", h.VehicleCreate)
		r.Get("/{id}", h.VehicleGet)
		r.Put("/{id}", h.VehicleUpdate)
		r.Delete("/{id}", h.VehicleDelete)
	})

	r.Route("/reservas", func(r chi.Router) {
		r.Get("/", h.ReservationList)
		r.Post("/", h.ReservationCreate)
		r.Get("/{id}", h.ReservationGet)
		r.Put("/{id}", h.ReservationUpdate)
		r.Delete("/{id}", h.ReservationDelete)
	})

	r.Route("/manutencoes", func(r chi.Router) {
		r.Get("/", h.MaintenanceList)
		r.Post("/", h.MaintenanceCreate)
		r.Get("/{id}", h.MaintenanceGet)
		r.Put("/{id}", h.MaintenanceUpdate)
		r.Delete("/{id}", h.MaintenanceDelete)
	})

	r.Route("/funcionarios", func(r chi.Router) {
		r.Get("/", h.EmployeeList)
		r.Post("/", h.EmployeeCreate)
		r.Get("/{id}", h.EmployeeGet)
		r.Put("/{id}", h.EmployeeUpdate)
		r.Delete("/{id}", h.EmployeeDelete)
	})

	r.Route("/categorias", func(r chi.Router) {
		r.Get("/", h.CategoryList)
		r.Get("/{id}", h.CategoryGet)
	})

	r.Route("/favoritos", func(r chi.Router) {
		r.Get("/", h.FavoriteList)
		r.Post("/", h.FavoriteCreate)
	})
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	var addr string
	if s.bind != "" {
		addr = fmt.Sprintf("%s:%d", s.bind, s.port)
	} else {
		addr = fmt.Sprintf(":%d", s.port)
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
