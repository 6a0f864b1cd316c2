package database

import (
	"database/sql"
	"fmt"
)

// Reservation statuses. "concluida" is the only terminal status; the other
// two keep the referenced client blocked from deletion.
const (
	ReservationStatusActive    = "ativa"
	ReservationStatusCompleted = "concluida"
	ReservationStatusCancelled = "cancelada"
)

// Reservation represents a row of the reservas table. Dates are stored and
// exposed in the store's "2006-01-02 15:04:05" representation.
type Reservation struct {
	ID         int64   `json:"id_reserva"`
	ClientID   int64   `json:"id_cliente"`
	VehicleID  int64   `json:"id_veiculo"`
	EmployeeID int64   `json:"id_funcionario"`
	StartDate  string  `json:"data_inicio"`
	EndDate    string  `json:"data_fim"`
	TotalPrice float64 `json:"preco_total"`
	Status     string  `json:"estado"`
}

// ReservationFilter narrows ListReservations. Zero values mean no filter.
type ReservationFilter struct {
	Status    string
	ClientID  *int64
	VehicleID *int64
}

// ReservationRef is the flat reference row used to compute per-owner
// reservation aggregates.
type ReservationRef struct {
	ID      int64
	OwnerID int64
	Status  string
	Start   string
}

// Owner columns for reservation reference queries.
const (
	reservationOwnerClient   = "id_cliente"
	reservationOwnerVehicle  = "id_veiculo"
	reservationOwnerEmployee = "id_funcionario"
)

// ListReservations retrieves reservations, optionally filtered. All filters
// combine with AND.
func (db *DB) ListReservations(f ReservationFilter) ([]Reservation, error) {
	query := `
		SELECT id_reserva, id_cliente, id_veiculo, id_funcionario,
		       data_inicio, data_fim, preco_total, estado
		FROM reservas WHERE 1=1
	`
	var args []any
	if f.Status != "" {
		query += " AND estado = ?"
		args = append(args, f.Status)
	}
	if f.ClientID != nil {
		query += " AND id_cliente = ?"
		args = append(args, *f.ClientID)
	}
	if f.VehicleID != nil {
		query += " AND id_veiculo = ?"
		args = append(args, *f.VehicleID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []Reservation
	for rows.Next() {
		r := Reservation{}
		if err := rows.Scan(&r.ID, &r.ClientID, &r.VehicleID, &r.EmployeeID,
			&r.StartDate, &r.EndDate, &r.TotalPrice, &r.Status); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

// GetReservation retrieves a reservation by ID. Returns nil when no row
// matches.
func (db *DB) GetReservation(id int64) (*Reservation, error) {
	r := &Reservation{}
	err := db.QueryRow(`
		SELECT id_reserva, id_cliente, id_veiculo, id_funcionario,
		       data_inicio, data_fim, preco_total, estado
		FROM reservas WHERE id_reserva = ?
	`, id).Scan(&r.ID, &r.ClientID, &r.VehicleID, &r.EmployeeID,
		&r.StartDate, &r.EndDate, &r.TotalPrice, &r.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return r, nil
}

// CreateReservation inserts a new reservation row and returns the generated
// ID.
func (db *DB) CreateReservation(r *Reservation) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO reservas
		(id_cliente, id_veiculo, id_funcionario, data_inicio, data_fim, preco_total, estado)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ClientID, r.VehicleID, r.EmployeeID, r.StartDate, r.EndDate, r.TotalPrice, r.Status)
	if err != nil {
		return 0, fmt.Errorf("failed to create reservation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get reservation id: %w", err)
	}
	return id, nil
}

// UpdateReservation replaces every mutable column of the reservation row.
// Returns the number of rows affected.
func (db *DB) UpdateReservation(id int64, r *Reservation) (int64, error) {
	result, err := db.Exec(`
		UPDATE reservas SET
			id_cliente = ?, id_veiculo = ?, id_funcionario = ?,
			data_inicio = ?, data_fim = ?, preco_total = ?, estado = ?
		WHERE id_reserva = ?
	`, r.ClientID, r.VehicleID, r.EmployeeID, r.StartDate, r.EndDate, r.TotalPrice, r.Status, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update reservation: %w", err)
	}
	return result.RowsAffected()
}

// DeleteReservation removes a reservation. Returns the number of rows
// affected.
func (db *DB) DeleteReservation(id int64) (int64, error) {
	result, err := db.Exec("DELETE FROM reservas WHERE id_reserva = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reservation: %w", err)
	}
	return result.RowsAffected()
}

// ReservationRefsByClient returns one reference row per reservation, keyed by
// client, for computing list-level aggregates.
func (db *DB) ReservationRefsByClient() ([]ReservationRef, error) {
	return db.reservationRefs(reservationOwnerClient, nil)
}

// ReservationRefsForClient returns the reference rows of a single client.
func (db *DB) ReservationRefsForClient(id int64) ([]ReservationRef, error) {
	return db.reservationRefs(reservationOwnerClient, &id)
}

// ReservationRefsByVehicle returns one reference row per reservation, keyed
// by vehicle.
func (db *DB) ReservationRefsByVehicle() ([]ReservationRef, error) {
	return db.reservationRefs(reservationOwnerVehicle, nil)
}

// ReservationRefsForVehicle returns the reference rows of a single vehicle.
func (db *DB) ReservationRefsForVehicle(id int64) ([]ReservationRef, error) {
	return db.reservationRefs(reservationOwnerVehicle, &id)
}

// ReservationRefsByEmployee returns one reference row per reservation, keyed
// by employee.
func (db *DB) ReservationRefsByEmployee() ([]ReservationRef, error) {
	return db.reservationRefs(reservationOwnerEmployee, nil)
}

// ReservationRefsForEmployee returns the reference rows of a single employee.
func (db *DB) ReservationRefsForEmployee(id int64) ([]ReservationRef, error) {
	return db.reservationRefs(reservationOwnerEmployee, &id)
}

// reservationRefs fetches flat reference rows keyed by ownerCol, one of the
// fixed owner column constants.
func (db *DB) reservationRefs(ownerCol string, ownerID *int64) ([]ReservationRef, error) {
	query := fmt.Sprintf("SELECT id_reserva, %s, estado, data_inicio FROM reservas", ownerCol)
	var args []any
	if ownerID != nil {
		query += fmt.Sprintf(" WHERE %s = ?", ownerCol)
		args = append(args, *ownerID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservation refs: %w", err)
	}
	defer rows.Close()

	var refs []ReservationRef
	for rows.Next() {
		ref := ReservationRef{}
		if err := rows.Scan(&ref.ID, &ref.OwnerID, &ref.Status, &ref.Start); err != nil {
			return nil, fmt.Errorf("failed to scan reservation ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// ReservationStatusesForClientTx returns the statuses of a client's
// reservations inside the caller's transaction.
func (db *DB) ReservationStatusesForClientTx(tx *sql.Tx, clientID int64) ([]string, error) {
	return reservationStatusesTx(tx, reservationOwnerClient, clientID)
}

// ReservationStatusesForVehicleTx returns the statuses of a vehicle's
// reservations inside the caller's transaction.
func (db *DB) ReservationStatusesForVehicleTx(tx *sql.Tx, vehicleID int64) ([]string, error) {
	return reservationStatusesTx(tx, reservationOwnerVehicle, vehicleID)
}

// ActiveReservationCountForEmployeeTx counts an employee's reservations in
// the active status, inside the caller's transaction.
func (db *DB) ActiveReservationCountForEmployeeTx(tx *sql.Tx, employeeID int64) (int, error) {
	var count int
	err := tx.QueryRow(
		"SELECT COUNT(*) FROM reservas WHERE id_funcionario = ? AND estado = ?",
		employeeID, ReservationStatusActive,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}
	return count, nil
}

func reservationStatusesTx(tx *sql.Tx, ownerCol string, ownerID int64) ([]string, error) {
	rows, err := tx.Query(fmt.Sprintf("SELECT estado FROM reservas WHERE %s = ?", ownerCol), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservation statuses: %w", err)
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, fmt.Errorf("failed to scan reservation status: %w", err)
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}
