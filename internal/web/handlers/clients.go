package handlers

import (
	"net/http"

	"github.com/car4me/car4me/internal/database"
	"github.com/car4me/car4me/internal/service"
)

// ClientList returns every client annotated with its reservation summary.
func (h *Handlers) ClientList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, clients)
}

// ClientGet returns a single client by ID.
func (h *Handlers) ClientGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id_cliente", service.NotFound("Cliente não encontrado"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	client, err := h.clients.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, client)
}

// ClientCreate registers a new client.
func (h *Handlers) ClientCreate(w http.ResponseWriter, r *http.Request) {
	var body database.Client
	if err := decodeBody(r, &body, service.Validation("Dados obrigatórios em falta")); err != nil {
		h.respondError(w, err)
		return
	}
	client, err := h.clients.Create(&body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, client)
}

// ClientUpdate replaces a client's details.
func (h *Handlers) ClientUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id_cliente", service.NotFound("Cliente não encontrado"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	var body database.Client
	if err := decodeBody(r, &body, service.Validation("Dados obrigatórios em falta")); err != nil {
		h.respondError(w, err)
		return
	}
	client, err := h.clients.Update(id, &body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, client)
}

// ClientDelete removes a client unless it still has blocking reservations.
func (h *Handlers) ClientDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id_cliente", service.NotFound("Cliente não encontrado"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	ack, err := h.clients.Delete(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, ack)
}
