package service

import (
	"database/sql"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/car4me/car4me/internal/database"
)

// Statuses that block a vehicle's deletion while a reservation holds them.
var vehicleBlockingStatuses = []string{
	database.ReservationStatusActive,
	database.ReservationStatusCancelled,
}

// Vehicles implements the vehicle resource: filtered listing, annotated
// reads, plate normalization, and the reservation/maintenance delete guards
// with an audit trail for blocked attempts.
type Vehicles struct {
	db *database.DB

	// legacyCompat reproduces the original API's list behavior: filters
	// are parsed and validated but never applied to the query.
	legacyCompat bool
}

// NewVehicles creates the vehicle resource service.
func NewVehicles(db *database.DB, legacyCompat bool) *Vehicles {
	return &Vehicles{db: db, legacyCompat: legacyCompat}
}

// VehicleListView is a vehicle row annotated with the reservation aggregate
// shown on listings.
type VehicleListView struct {
	database.Vehicle
	HasReservation    bool    `json:"tem_reserva"`
	ReservationStatus *string `json:"estado_reserva"`
}

// VehicleView is the full annotated vehicle returned by Get.
type VehicleView struct {
	database.Vehicle
	HasReservation    bool    `json:"tem_reserva"`
	ReservationStatus *string `json:"estado_reserva"`
	ReservationID     *int64  `json:"id_reserva"`
	ReservationIDs    []int64 `json:"reservas_ids"`
	HasMaintenance    bool    `json:"tem_manutencao"`
	MaintenanceID     *int64  `json:"id_manutencao"`
	MaintenanceIDs    []int64 `json:"manutencoes_ids"`
}

// VehicleListParams carries the raw query filters of the list operation.
type VehicleListParams struct {
	Status   string
	Brand    string
	Category string
}

// parseFilter validates the raw filters defensively: strings are trimmed,
// the category must be numeric.
func (p VehicleListParams) parseFilter() database.VehicleFilter {
	f := database.VehicleFilter{
		Status: strings.TrimSpace(p.Status),
		Brand:  strings.TrimSpace(p.Brand),
	}
	if category := strings.TrimSpace(p.Category); category != "" {
		if id, err := strconv.ParseInt(category, 10, 64); err == nil {
			f.CategoryID = &id
		}
	}
	return f
}

// List returns vehicles joined with their category and annotated with the
// latest-reservation aggregate. Under legacy compat the parsed filters are
// discarded, as the original API did.
func (s *Vehicles) List(params VehicleListParams) ([]VehicleListView, error) {
	filter := params.parseFilter()
	if s.legacyCompat {
		filter = database.VehicleFilter{}
	}

	vehicles, err := s.db.ListVehicles(filter)
	if err != nil {
		return nil, Store(err)
	}

	refs, err := s.db.ReservationRefsByVehicle()
	if err != nil {
		return nil, Store(err)
	}
	grouped := groupReservationRefs(refs)

	views := make([]VehicleListView, 0, len(vehicles))
	for _, v := range vehicles {
		summary := summarizeReservations(grouped[v.ID])
		views = append(views, VehicleListView{
			Vehicle:           v,
			HasReservation:    summary.Has,
			ReservationStatus: summary.LastStatus,
		})
	}
	return views, nil
}

// Get returns one vehicle with reservation and maintenance aggregates. The
// ID must be a positive integer.
func (s *Vehicles) Get(id int64) (*VehicleView, error) {
	if id <= 0 {
		return nil, Validation("ID inválido")
	}

	v, err := s.db.GetVehicle(id)
	if err != nil {
		return nil, Store(err)
	}
	if v == nil {
		return nil, NotFound("Veículo não encontrado")
	}

	resRefs, err := s.db.ReservationRefsForVehicle(id)
	if err != nil {
		return nil, Store(err)
	}
	maintRefs, err := s.db.MaintenanceRefsForVehicle(id)
	if err != nil {
		return nil, Store(err)
	}

	resSummary := summarizeReservations(resRefs)
	maintSummary := summarizeMaintenance(maintRefs)

	return &VehicleView{
		Vehicle:           *v,
		HasReservation:    resSummary.Has,
		ReservationStatus: resSummary.LastStatus,
		ReservationID:     resSummary.LastID,
		ReservationIDs:    resSummary.IDs,
		HasMaintenance:    maintSummary.Has,
		MaintenanceID:     maintSummary.LastID,
		MaintenanceIDs:    maintSummary.IDs,
	}, nil
}

// Create validates and inserts a vehicle. The plate is normalized before
// storage; status defaults to "Disponivel".
func (s *Vehicles) Create(v *database.Vehicle) (*database.Vehicle, error) {
	if err := normalizeVehicle(v); err != nil {
		return nil, err
	}

	id, err := s.db.CreateVehicle(v)
	if err != nil {
		return nil, Store(err)
	}
	v.ID = id
	return v, nil
}

// Update validates and fully replaces a vehicle row, with the same plate
// normalization as Create.
func (s *Vehicles) Update(id int64, v *database.Vehicle) (*database.Vehicle, error) {
	if err := normalizeVehicle(v); err != nil {
		return nil, err
	}

	affected, err := s.db.UpdateVehicle(id, v)
	if err != nil {
		return nil, Store(err)
	}
	if affected == 0 {
		return nil, NotFound("Veículo não encontrado")
	}
	v.ID = id
	return v, nil
}

// Delete removes a vehicle unless it has a reservation in a blocking status
// or any maintenance record. Blocked attempts are recorded in the audit
// table. Guard and delete share one transaction; the audit row is written
// after the rollback so it survives the blocked attempt.
func (s *Vehicles) Delete(id int64) (*Ack, error) {
	var blockedReason string
	err := s.db.Transaction(func(tx *sql.Tx) error {
		statuses, err := s.db.ReservationStatusesForVehicleTx(tx, id)
		if err != nil {
			return Store(err)
		}
		for _, status := range statuses {
			if slices.Contains(vehicleBlockingStatuses, status) {
				blockedReason = database.VehicleDeleteBlockedByReservations
				return Conflict("Não é possível apagar: o veículo possui reservas ativas ou canceladas.")
			}
		}

		maintenanceIDs, err := s.db.MaintenanceIDsForVehicleTx(tx, id)
		if err != nil {
			return Store(err)
		}
		if len(maintenanceIDs) > 0 {
			blockedReason = database.VehicleDeleteBlockedByMaintenance
			return Conflict("Não é possível apagar: o veículo possui manutenções registadas.")
		}

		affected, err := s.db.DeleteVehicleTx(tx, id)
		if err != nil {
			return Store(err)
		}
		if affected == 0 {
			return NotFound("Veículo não encontrado")
		}
		return nil
	})

	if blockedReason != "" {
		if logErr := s.db.LogVehicleDeleteAttempt(id, blockedReason); logErr != nil {
			log.Error().Err(logErr).Int64("vehicle_id", id).Msg("Failed to record blocked vehicle delete")
		}
	}
	if err != nil {
		return nil, err
	}
	return &Ack{Message: "Veículo removido com sucesso (não possui manutenções ou reservas bloqueantes)"}, nil
}

func normalizeVehicle(v *database.Vehicle) error {
	if v == nil || v.Brand == "" || v.Model == "" || v.Plate == "" || v.Year == 0 {
		return Validation("Dados obrigatórios em falta")
	}
	v.Plate = strings.ToUpper(strings.TrimSpace(v.Plate))
	if v.Status == "" {
		v.Status = database.VehicleStatusDefault
	}
	// CategoryName/DayPrice are read-side only.
	v.CategoryName = nil
	v.DayPrice = nil
	return nil
}
