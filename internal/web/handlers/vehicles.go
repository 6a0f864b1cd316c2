package handlers

import (
	"net/http"

	"github.com/car4me/car4me/internal/database"
	"github.com/car4me/car4me/internal/service"
)

// VehicleList returns the fleet, optionally filtered by the estado, marca
// and id_categoria query parameters.
func (h *Handlers) VehicleList(w http.ResponseWriter, r *http.Request) {
	params := service.VehicleListParams{
		Status:   r.URL.Query().Get("estado"),
		Brand:    r.URL.Query().Get("marca"),
		Category: r.URL.Query().Get("id_categoria"),
	}
	vehicles, err := h.vehicles.List(params)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, vehicles)
}

// VehicleGet returns a single vehicle with its reservation and maintenance
// annotations.
func (h *Handlers) VehicleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.Validation("ID inválido"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	vehicle, err := h.vehicles.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, vehicle)
}

// VehicleCreate adds a vehicle to the fleet.
func (h *Handlers) VehicleCreate(w http.ResponseWriter, r *http.Request) {
	var body database.Vehicle
	if err := decodeBody(r, &body, service.Validation("Dados obrigatórios em falta")); err != nil {
		h.respondError(w, err)
		return
	}
	vehicle, err := h.vehicles.Create(&body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, vehicle)
}

// VehicleUpdate replaces a vehicle's details.
func (h *Handlers) VehicleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.Validation("ID inválido"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	var body database.Vehicle
	if err := decodeBody(r, &body, service.Validation("Dados obrigatórios em falta")); err != nil {
		h.respondError(w, err)
		return
	}
	vehicle, err := h.vehicles.Update(id, &body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, vehicle)
}

// VehicleDelete removes a vehicle unless reservations or maintenance records
// still reference it. Blocked attempts are recorded in the audit log.
func (h *Handlers) VehicleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.Validation("ID inválido"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	ack, err := h.vehicles.Delete(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, ack)
}
