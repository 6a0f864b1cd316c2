package database

import "fmt"

// Reasons recorded when a vehicle deletion is blocked.
const (
	VehicleDeleteBlockedByReservations = "Tentativa de apagar veículo com reservas em estado bloqueante"
	VehicleDeleteBlockedByMaintenance  = "Tentativa de apagar veículo com manutenções associadas"
)

// LogVehicleDeleteAttempt records a blocked vehicle deletion in the audit
// table. Runs outside the guard transaction so the row survives its
// rollback.
func (db *DB) LogVehicleDeleteAttempt(vehicleID int64, reason string) error {
	_, err := db.Exec(
		"INSERT INTO logs_veiculos_delete (id_veiculo, motivo) VALUES (?, ?)",
		vehicleID, reason,
	)
	if err != nil {
		return fmt.Errorf("failed to log vehicle delete attempt: %w", err)
	}
	return nil
}

// CountVehicleDeleteLogs returns the number of audit rows for a vehicle.
func (db *DB) CountVehicleDeleteLogs(vehicleID int64) (int, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM logs_veiculos_delete WHERE id_veiculo = ?", vehicleID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count vehicle delete logs: %w", err)
	}
	return count, nil
}

// PruneVehicleDeleteLogs removes audit rows older than the retention window.
// Returns the number of rows removed.
func (db *DB) PruneVehicleDeleteLogs(retentionDays int) (int64, error) {
	var query string
	switch db.driver {
	case "mysql":
		query = "DELETE FROM logs_veiculos_delete WHERE criado_em < DATE_SUB(NOW(), INTERVAL ? DAY)"
	default:
		query = "DELETE FROM logs_veiculos_delete WHERE criado_em < datetime('now', '-' || ? || ' days')"
	}

	result, err := db.Exec(query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to prune vehicle delete logs: %w", err)
	}
	return result.RowsAffected()
}
