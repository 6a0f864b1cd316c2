package database

import (
	"database/sql"
	"fmt"
)

// VehicleStatusDefault is assigned when a create or update omits the status.
const VehicleStatusDefault = "Disponivel"

// Vehicle represents a row of the veiculos table, with the category columns
// joined in for reads.
type Vehicle struct {
	ID         int64   `json:"id_veiculo"`
	Brand      string  `json:"marca"`
	Model      string  `json:"modelo"`
	Plate      string  `json:"matricula"`
	Year       int     `json:"ano"`
	Color      *string `json:"cor"`
	Mileage    int64   `json:"quilometragem"`
	Status     string  `json:"estado"`
	CategoryID *int64  `json:"id_categoria"`

	// Joined from categorias on reads; never written.
	CategoryName *string  `json:"categoria"`
	DayPrice     *float64 `json:"preco_dia"`
}

// VehicleFilter narrows ListVehicles. Zero values mean no filter.
type VehicleFilter struct {
	Status     string
	Brand      string
	CategoryID *int64
}

const vehicleSelect = `
	SELECT v.id_veiculo, v.marca, v.modelo, v.matricula, v.ano, v.cor,
	       v.quilometragem, v.estado, v.id_categoria,
	       c.nome, c.preco_dia
	FROM veiculos v
	LEFT JOIN categorias c ON c.id_categoria = v.id_categoria
`

// ListVehicles retrieves vehicles joined with their category, optionally
// filtered. All filters combine with AND.
func (db *DB) ListVehicles(f VehicleFilter) ([]Vehicle, error) {
	query := vehicleSelect + " WHERE 1=1"
	var args []any
	if f.Status != "" {
		query += " AND v.estado = ?"
		args = append(args, f.Status)
	}
	if f.Brand != "" {
		query += " AND v.marca = ?"
		args = append(args, f.Brand)
	}
	if f.CategoryID != nil {
		query += " AND v.id_categoria = ?"
		args = append(args, *f.CategoryID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

// GetVehicle retrieves a vehicle by ID with its category joined in. Returns
// nil when no row matches.
func (db *DB) GetVehicle(id int64) (*Vehicle, error) {
	row := db.QueryRow(vehicleSelect+" WHERE v.id_veiculo = ?", id)
	v, err := scanVehicle(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return v, nil
}

// CreateVehicle inserts a new vehicle row and returns the generated ID.
func (db *DB) CreateVehicle(v *Vehicle) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO veiculos
		(marca, modelo, matricula, ano, cor, quilometragem, estado, id_categoria)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, v.Brand, v.Model, v.Plate, v.Year, v.Color, v.Mileage, v.Status, v.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to create vehicle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get vehicle id: %w", err)
	}
	return id, nil
}

// UpdateVehicle replaces every mutable column of the vehicle row. Returns
// the number of rows affected.
func (db *DB) UpdateVehicle(id int64, v *Vehicle) (int64, error) {
	result, err := db.Exec(`
		UPDATE veiculos SET
			marca = ?, modelo = ?, matricula = ?, ano = ?, cor = ?,
			quilometragem = ?, estado = ?, id_categoria = ?
		WHERE id_veiculo = ?
	`, v.Brand, v.Model, v.Plate, v.Year, v.Color, v.Mileage, v.Status, v.CategoryID, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return result.RowsAffected()
}

// DeleteVehicleTx removes a vehicle inside the caller's transaction. Returns
// the number of rows affected.
func (db *DB) DeleteVehicleTx(tx *sql.Tx, id int64) (int64, error) {
	result, err := tx.Exec("DELETE FROM veiculos WHERE id_veiculo = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return result.RowsAffected()
}

func scanVehicle(scan func(...any) error) (*Vehicle, error) {
	v := &Vehicle{}
	var color, categoryName sql.NullString
	var categoryID sql.NullInt64
	var dayPrice sql.NullFloat64
	if err := scan(&v.ID, &v.Brand, &v.Model, &v.Plate, &v.Year, &color,
		&v.Mileage, &v.Status, &categoryID, &categoryName, &dayPrice); err != nil {
		return nil, err
	}
	v.Color = nullStringToPtr(color)
	v.CategoryID = nullInt64ToPtr(categoryID)
	v.CategoryName = nullStringToPtr(categoryName)
	v.DayPrice = nullFloat64ToPtr(dayPrice)
	return v, nil
}
