package handlers

import (
	"net/http"

	"github.com/car4me/car4me/internal/database"
	"github.com/car4me/car4me/internal/service"
)

// MaintenanceList returns maintenance records, optionally filtered by
// vehicle.
func (h *Handlers) MaintenanceList(w http.ResponseWriter, r *http.Request) {
	records, err := h.maintenance.List(r.URL.Query().Get("id_veiculo"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, records)
}

// MaintenanceGet returns a single maintenance record by ID.
func (h *Handlers) MaintenanceGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.NotFound("Manutenção não encontrada"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	record, err := h.maintenance.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, record)
}

// MaintenanceCreate records a maintenance intervention on a vehicle.
func (h *Handlers) MaintenanceCreate(w http.ResponseWriter, r *http.Request) {
	var body database.Maintenance
	if err := decodeBody(r, &body, service.Validation("Dados obrigatórios em falta")); err != nil {
		h.respondError(w, err)
		return
	}
	record, err := h.maintenance.Create(&body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, record)
}

// MaintenanceUpdate replaces a maintenance record's details.
func (h *Handlers) MaintenanceUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.NotFound("Manutenção não encontrada"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	var body database.Maintenance
	if err := decodeBody(r, &body, service.Validation("Dados obrigatórios em falta")); err != nil {
		h.respondError(w, err)
		return
	}
	record, err := h.maintenance.Update(id, &body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, record)
}

// MaintenanceDelete removes a maintenance record.
func (h *Handlers) MaintenanceDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.NotFound("Manutenção não encontrada"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	ack, err := h.maintenance.Delete(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, ack)
}
