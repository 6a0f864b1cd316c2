package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// Favorite links one client and one vehicle. The pair is the identity.
type Favorite struct {
	ClientID  int64 `json:"id_cliente"`
	VehicleID int64 `json:"id_veiculo"`
}

// ListFavorites retrieves all favorite pairs.
func (db *DB) ListFavorites() ([]Favorite, error) {
	rows, err := db.Query(`
		SELECT id_cliente, id_veiculo
		FROM clientes_favoritos
		ORDER BY id_cliente, id_veiculo
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		f := Favorite{}
		if err := rows.Scan(&f.ClientID, &f.VehicleID); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// CreateFavorites bulk-inserts favorite pairs in a single statement within a
// transaction, so either every pair lands or none do. A unique violation is
// reported as ErrDuplicate.
func (db *DB) CreateFavorites(pairs []Favorite) (int64, error) {
	placeholders := make([]string, 0, len(pairs))
	args := make([]any, 0, len(pairs)*2)
	for _, p := range pairs {
		placeholders = append(placeholders, "(?, ?)")
		args = append(args, p.ClientID, p.VehicleID)
	}

	var inserted int64
	err := db.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(
			"INSERT INTO clientes_favoritos (id_cliente, id_veiculo) VALUES "+strings.Join(placeholders, ", "),
			args...,
		)
		if err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to create favorites: %w", err)
		}
		inserted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// DeleteFavorite removes an exact (client, vehicle) pair. Returns the number
// of rows affected.
func (db *DB) DeleteFavorite(clientID, vehicleID int64) (int64, error) {
	result, err := db.Exec(`
		DELETE FROM clientes_favoritos
		WHERE id_cliente = ? AND id_veiculo = ?
	`, clientID, vehicleID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorite: %w", err)
	}
	return result.RowsAffected()
}

// RepointFavoriteVehicle replaces the vehicle half of an existing pair.
// Returns the number of rows affected; ErrDuplicate when the new pair
// already exists.
func (db *DB) RepointFavoriteVehicle(clientID, vehicleID, newVehicleID int64) (int64, error) {
	result, err := db.Exec(`
		UPDATE clientes_favoritos
		SET id_veiculo = ?
		WHERE id_cliente = ? AND id_veiculo = ?
	`, newVehicleID, clientID, vehicleID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to repoint favorite vehicle: %w", err)
	}
	return result.RowsAffected()
}

// RepointFavoriteClient replaces the client half of an existing pair.
// Returns the number of rows affected; ErrDuplicate when the new pair
// already exists.
func (db *DB) RepointFavoriteClient(clientID, vehicleID, newClientID int64) (int64, error) {
	result, err := db.Exec(`
		UPDATE clientes_favoritos
		SET id_cliente = ?
		WHERE id_cliente = ? AND id_veiculo = ?
	`, newClientID, clientID, vehicleID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to repoint favorite client: %w", err)
	}
	return result.RowsAffected()
}
