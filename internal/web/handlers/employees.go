package handlers

import (
	"net/http"

	"github.com/car4me/car4me/internal/database"
	"github.com/car4me/car4me/internal/service"
)

// EmployeeList returns every employee annotated with its reservation summary.
func (h *Handlers) EmployeeList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.List()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, employees)
}

// EmployeeGet returns a single employee by ID.
func (h *Handlers) EmployeeGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.NotFound("Funcionário não encontrado"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	employee, err := h.employees.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, employee)
}

// EmployeeCreate registers a new employee.
func (h *Handlers) EmployeeCreate(w http.ResponseWriter, r *http.Request) {
	var body database.Employee
	if err := decodeBody(r, &body, service.Validation("Dados obrigatórios em falta")); err != nil {
		h.respondError(w, err)
		return
	}
	employee, err := h.employees.Create(&body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, employee)
}

// EmployeeUpdate replaces an employee's details.
func (h *Handlers) EmployeeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.NotFound("Funcionário não encontrado"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	var body database.Employee
	if err := decodeBody(r, &body, service.Validation("Dados obrigatórios em falta")); err != nil {
		h.respondError(w, err)
		return
	}
	employee, err := h.employees.Update(id, &body)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, employee)
}

// EmployeeDelete removes an employee unless it still manages active
// reservations.
func (h *Handlers) EmployeeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", service.NotFound("Funcionário não encontrado"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	ack, err := h.employees.Delete(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, ack)
}
