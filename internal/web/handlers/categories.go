package handlers

import (
	"net/http"

	"github.com/car4me/car4me/internal/service"
)

// CategoryList returns the vehicle categories.
func (h *Handlers) CategoryList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, categories)
}

// CategoryGet returns a single category by ID.
func (h *Handlers) CategoryGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.NotFound("Categoria não encontrada"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	category, err := h.categories.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, category)
}

// Health reports service and database liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.db.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	h.respondJSON(w, code, map[string]string{"status": status})
}
