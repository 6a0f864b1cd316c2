package service

import (
	"strconv"
	"strings"

	"github.com/car4me/car4me/internal/database"
)

// Reservations implements the reservation resource. Reservations carry no
// delete guard; they are always deletable.
type Reservations struct {
	db *database.DB
}

// NewReservations creates the reservation resource service.
func NewReservations(db *database.DB) *Reservations {
	return &Reservations{db: db}
}

// ReservationListParams carries the raw query filters of the list operation.
type ReservationListParams struct {
	Status    string
	ClientID  string
	VehicleID string
}

// List returns reservations narrowed by the optional filters, combined with
// AND. Numeric filters are validated before use.
func (s *Reservations) List(params ReservationListParams) ([]database.Reservation, error) {
	filter := database.ReservationFilter{
		Status: strings.TrimSpace(params.Status),
	}
	if raw := strings.TrimSpace(params.ClientID); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.ClientID = &id
		}
	}
	if raw := strings.TrimSpace(params.VehicleID); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.VehicleID = &id
		}
	}

	reservations, err := s.db.ListReservations(filter)
	if err != nil {
		return nil, Store(err)
	}
	return reservations, nil
}

// Get returns one reservation.
func (s *Reservations) Get(id int64) (*database.Reservation, error) {
	r, err := s.db.GetReservation(id)
	if err != nil {
		return nil, Store(err)
	}
	if r == nil {
		return nil, NotFound("Reserva não encontrada")
	}
	return r, nil
}

// Create validates and inserts a reservation. Dates are normalized from the
// wire timestamp format; price defaults to 0 and status to "ativa".
func (s *Reservations) Create(r *database.Reservation) (*database.Reservation, error) {
	if err := normalizeReservation(r, "Dados obrigatórios em falta"); err != nil {
		return nil, err
	}

	id, err := s.db.CreateReservation(r)
	if err != nil {
		return nil, Store(err)
	}
	r.ID = id
	return r, nil
}

// Update validates and fully replaces a reservation row, with the same date
// normalization and defaults as Create.
func (s *Reservations) Update(id int64, r *database.Reservation) (*database.Reservation, error) {
	if err := normalizeReservation(r, "Dados inválidos"); err != nil {
		return nil, err
	}

	affected, err := s.db.UpdateReservation(id, r)
	if err != nil {
		return nil, Store(err)
	}
	if affected == 0 {
		return nil, NotFound("Reserva não encontrada")
	}
	r.ID = id
	return r, nil
}

// Delete removes a reservation unconditionally.
func (s *Reservations) Delete(id int64) (*Ack, error) {
	affected, err := s.db.DeleteReservation(id)
	if err != nil {
		return nil, Store(err)
	}
	if affected == 0 {
		return nil, NotFound("Reserva não encontrada")
	}
	return &Ack{Message: "Reserva eliminada com sucesso"}, nil
}

func normalizeReservation(r *database.Reservation, missingMessage string) error {
	if r == nil || r.ClientID == 0 || r.VehicleID == 0 || r.EmployeeID == 0 ||
		r.StartDate == "" || r.EndDate == "" {
		return Validation(missingMessage)
	}

	start, ok := normalizeDateTime(r.StartDate)
	if !ok {
		return Validation("Data de início inválida")
	}
	end, ok := normalizeDateTime(r.EndDate)
	if !ok {
		return Validation("Data de fim inválida")
	}
	r.StartDate = start
	r.EndDate = end

	if r.Status == "" {
		r.Status = database.ReservationStatusActive
	}
	return nil
}
