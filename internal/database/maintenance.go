package database

import (
	"database/sql"
	"fmt"
)

// Maintenance represents a row of the manutencoes table.
type Maintenance struct {
	ID          int64   `json:"id_manutencao"`
	VehicleID   int64   `json:"id_veiculo"`
	Description string  `json:"descricao"`
	Date        string  `json:"data_manutencao"`
	Cost        float64 `json:"custo"`
}

// MaintenanceRef is the flat reference row used to compute per-vehicle
// maintenance aggregates.
type MaintenanceRef struct {
	ID        int64
	VehicleID int64
	Date      string
}

// ListMaintenance retrieves maintenance records, optionally filtered by
// vehicle.
func (db *DB) ListMaintenance(vehicleID *int64) ([]Maintenance, error) {
	query := `
		SELECT id_manutencao, id_veiculo, descricao, data_manutencao, custo
		FROM manutencoes WHERE 1=1
	`
	var args []any
	if vehicleID != nil {
		query += " AND id_veiculo = ?"
		args = append(args, *vehicleID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance records: %w", err)
	}
	defer rows.Close()

	var records []Maintenance
	for rows.Next() {
		m := Maintenance{}
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.Description, &m.Date, &m.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance record: %w", err)
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// GetMaintenance retrieves a maintenance record by ID. Returns nil when no
// row matches.
func (db *DB) GetMaintenance(id int64) (*Maintenance, error) {
	m := &Maintenance{}
	err := db.QueryRow(`
		SELECT id_manutencao, id_veiculo, descricao, data_manutencao, custo
		FROM manutencoes WHERE id_manutencao = ?
	`, id).Scan(&m.ID, &m.VehicleID, &m.Description, &m.Date, &m.Cost)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance record: %w", err)
	}
	return m, nil
}

// CreateMaintenance inserts a new maintenance row and returns the generated
// ID.
func (db *DB) CreateMaintenance(m *Maintenance) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO manutencoes
		(id_veiculo, descricao, data_manutencao, custo)
		VALUES (?, ?, ?, ?)
	`, m.VehicleID, m.Description, m.Date, m.Cost)
	if err != nil {
		return 0, fmt.Errorf("failed to create maintenance record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get maintenance id: %w", err)
	}
	return id, nil
}

// UpdateMaintenance replaces every mutable column of the maintenance row.
// Returns the number of rows affected.
func (db *DB) UpdateMaintenance(id int64, m *Maintenance) (int64, error) {
	result, err := db.Exec(`
		UPDATE manutencoes SET
			id_veiculo = ?, descricao = ?, data_manutencao = ?, custo = ?
		WHERE id_manutencao = ?
	`, m.VehicleID, m.Description, m.Date, m.Cost, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update maintenance record: %w", err)
	}
	return result.RowsAffected()
}

// DeleteMaintenance removes a maintenance record. Returns the number of rows
// affected.
func (db *DB) DeleteMaintenance(id int64) (int64, error) {
	result, err := db.Exec("DELETE FROM manutencoes WHERE id_manutencao = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete maintenance record: %w", err)
	}
	return result.RowsAffected()
}

// MaintenanceRefsForVehicle returns the maintenance reference rows of one
// vehicle.
func (db *DB) MaintenanceRefsForVehicle(vehicleID int64) ([]MaintenanceRef, error) {
	rows, err := db.Query(
		"SELECT id_manutencao, id_veiculo, data_manutencao FROM manutencoes WHERE id_veiculo = ?",
		vehicleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance refs: %w", err)
	}
	defer rows.Close()

	var refs []MaintenanceRef
	for rows.Next() {
		ref := MaintenanceRef{}
		if err := rows.Scan(&ref.ID, &ref.VehicleID, &ref.Date); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// MaintenanceIDsForVehicleTx returns the maintenance record IDs of a vehicle
// inside the caller's transaction.
func (db *DB) MaintenanceIDsForVehicleTx(tx *sql.Tx, vehicleID int64) ([]int64, error) {
	rows, err := tx.Query("SELECT id_manutencao FROM manutencoes WHERE id_veiculo = ?", vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
