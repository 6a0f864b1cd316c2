package handlers

import (
	"net/http"

	"github.com/car4me/car4me/internal/database"
	"github.com/car4me/car4me/internal/service"
)

// FavoriteList returns favorites grouped per client.
func (h *Handlers) FavoriteList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.favorites.List()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, groups)
}

// FavoriteCreate inserts a batch of client/vehicle pairs in one statement.
func (h *Handlers) FavoriteCreate(w http.ResponseWriter, r *http.Request) {
	var body []database.Favorite
	if err := decodeBody(r, &body, service.Validation("O body deve ser uma lista de favoritos")); err != nil {
		h.respondError(w, err)
		return
	}
	result, err := h.favorites.Create(body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, result)
}

func favoritePair(r *http.Request) (int64, int64, error) {
	clientID, err := pathID(r, "id_cliente", service.NotFound("Favorito não encontrado"))
	if err != nil {
		return 0, 0, err
	}
	vehicleID, err := pathID(r, "id_veiculo", service.NotFound("Favorito não encontrado"))
	if err != nil {
		return 0, 0, err
	}
	return clientID, vehicleID, nil
}

// FavoriteDelete removes a single client/vehicle pair.
func (h *Handlers) FavoriteDelete(w http.ResponseWriter, r *http.Request) {
	clientID, vehicleID, err := favoritePair(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	ack, err := h.favorites.Delete(clientID, vehicleID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, ack)
}

// FavoriteRepointVehicle swaps the vehicle side of an existing favorite.
func (h *Handlers) FavoriteRepointVehicle(w http.ResponseWriter, r *http.Request) {
	clientID, vehicleID, err := favoritePair(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var body struct {
		NewVehicleID int64 `json:"novo_id_veiculo"`
	}
	if err := decodeBody(r, &body, service.Validation("novo_id_veiculo é obrigatório")); err != nil {
		h.respondError(w, err)
		return
	}
	result, err := h.favorites.RepointVehicle(clientID, vehicleID, body.NewVehicleID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// FavoriteRepointClient swaps the client side of an existing favorite.
func (h *Handlers) FavoriteRepointClient(w http.ResponseWriter, r *http.Request) {
	clientID, vehicleID, err := favoritePair(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var body struct {
		NewClientID int64 `json:"novo_id_cliente"`
	}
	if err := decodeBody(r, &body, service.Validation("novo_id_cliente é obrigatório")); err != nil {
		h.respondError(w, err)
		return
	}
	result, err := h.favorites.RepointClient(clientID, vehicleID, body.NewClientID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}
