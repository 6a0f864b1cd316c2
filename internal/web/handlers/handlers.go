package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/car4me/car4me/internal/database"
	"github.com/car4me/car4me/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	clients      *service.Clients
	vehicles     *service.Vehicles
	reservations *service.Reservations
	maintenance  *service.MaintenanceRecords
	favorites    *service.Favorites
	employees    *service.Employees
	categories   *service.Categories
	db           *database.DB
}

// New creates a new Handlers instance
func New(db *database.DB, legacyCompat bool) *Handlers {
	return &Handlers{
		clients:      service.NewClients(db),
		vehicles:     service.NewVehicles(db, legacyCompat),
		reservations: service.NewReservations(db),
		maintenance:  service.NewMaintenanceRecords(db),
		favorites:    service.NewFavorites(db),
		employees:    service.NewEmployees(db),
		categories:   service.NewCategories(db),
		db:           db,
	}
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, err error) {
	status := service.StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}
	h.respondJSON(w, status, map[string]string{"error": err.Error()})
}

// pathID parses the named URL parameter as an ID. On failure the provided
// error is returned so each resource keeps its own not-found wording.
func pathID(r *http.Request, name string, onBad error) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, onBad
	}
	return id, nil
}

func decodeBody(r *http.Request, v any, onBad error) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return onBad
	}
	return nil
}
