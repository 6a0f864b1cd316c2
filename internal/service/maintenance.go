package service

import (
	"strconv"
	"strings"

	"github.com/car4me/car4me/internal/database"
)

// MaintenanceRecords implements the maintenance resource. No cross-entity
// guards apply.
type MaintenanceRecords struct {
	db *database.DB
}

// NewMaintenanceRecords creates the maintenance resource service.
func NewMaintenanceRecords(db *database.DB) *MaintenanceRecords {
	return &MaintenanceRecords{db: db}
}

// List returns maintenance records, optionally narrowed to one vehicle.
func (s *MaintenanceRecords) List(vehicleID string) ([]database.Maintenance, error) {
	var filter *int64
	if raw := strings.TrimSpace(vehicleID); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter = &id
		}
	}

	records, err := s.db.ListMaintenance(filter)
	if err != nil {
		return nil, Store(err)
	}
	return records, nil
}

// Get returns one maintenance record.
func (s *MaintenanceRecords) Get(id int64) (*database.Maintenance, error) {
	m, err := s.db.GetMaintenance(id)
	if err != nil {
		return nil, Store(err)
	}
	if m == nil {
		return nil, NotFound("Manutenção não encontrada")
	}
	return m, nil
}

// Create validates and inserts a maintenance record. The date is normalized
// from the wire timestamp format; cost defaults to 0.
func (s *MaintenanceRecords) Create(m *database.Maintenance) (*database.Maintenance, error) {
	if err := normalizeMaintenance(m, "Dados obrigatórios em falta"); err != nil {
		return nil, err
	}

	id, err := s.db.CreateMaintenance(m)
	if err != nil {
		return nil, Store(err)
	}
	m.ID = id
	return m, nil
}

// Update validates and fully replaces a maintenance row.
func (s *MaintenanceRecords) Update(id int64, m *database.Maintenance) (*database.Maintenance, error) {
	if err := normalizeMaintenance(m, "Dados inválidos"); err != nil {
		return nil, err
	}

	affected, err := s.db.UpdateMaintenance(id, m)
	if err != nil {
		return nil, Store(err)
	}
	if affected == 0 {
		return nil, NotFound("Manutenção não encontrada")
	}
	m.ID = id
	return m, nil
}

// Delete removes a maintenance record.
func (s *MaintenanceRecords) Delete(id int64) (*Ack, error) {
	affected, err := s.db.DeleteMaintenance(id)
	if err != nil {
		return nil, Store(err)
	}
	if affected == 0 {
		return nil, NotFound("Manutenção não encontrada")
	}
	return &Ack{Message: "Manutenção eliminada com sucesso"}, nil
}

func normalizeMaintenance(m *database.Maintenance, missingMessage string) error {
	if m == nil || m.VehicleID == 0 || m.Description == "" || m.Date == "" {
		return Validation(missingMessage)
	}

	date, ok := normalizeDateTime(m.Date)
	if !ok {
		return Validation("Data de manutenção inválida")
	}
	m.Date = date
	return nil
}
