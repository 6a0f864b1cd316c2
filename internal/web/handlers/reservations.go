package handlers

import (
	"net/http"

	"github.com/car4me/car4me/internal/database"
	"github.com/car4me/car4me/internal/service"
)

// ReservationList returns reservations, optionally filtered by status,
// client or vehicle query parameters.
func (h *Handlers) ReservationList(w http.ResponseWriter, r *http.Request) {
	params := service.ReservationListParams{
		Status:    r.URL.Query().Get("estado"),
		ClientID:  r.URL.Query().Get("id_cliente"),
		VehicleID: r.URL.Query().Get("id_veiculo"),
	}
	reservations, err := h.reservations.List(params)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reservations)
}

// ReservationGet returns a single reservation by ID.
func (h *Handlers) ReservationGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.NotFound("Reserva não encontrada"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	reservation, err := h.reservations.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reservation)
}

// ReservationCreate books a vehicle for a client.
func (h *Handlers) ReservationCreate(w http.ResponseWriter, r *http.Request) {
	var body database.Reservation
	if err := decodeBody(r, &body, service.Validation("Dados obrigatórios em falta")); err != nil {
		h.respondError(w, err)
		return
	}
	reservation, err := h.reservations.Create(&body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, reservation)
}

// ReservationUpdate replaces a reservation's details.
func (h *Handlers) ReservationUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.NotFound("Reserva não encontrada"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	var body database.Reservation
	if err := decodeBody(r, &body, service.Validation("Dados inválidos")); err != nil {
		h.respondError(w, err)
		return
	}
	reservation, err := h.reservations.Update(id, &body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reservation)
}

// ReservationDelete removes a reservation. Reservations carry no delete
// guard.
func (h *Handlers) ReservationDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.NotFound("Reserva não encontrada"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	ack, err := h.reservations.Delete(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, ack)
}
