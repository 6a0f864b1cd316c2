package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/car4me/car4me/internal/database"
)

func TestVehicles_CreateNormalizesPlate(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicles(db, false)

	created, err := svc.Create(&database.Vehicle{
		Brand: "Toyota",
		Model: "RAV4",
		Plate: "  aa-01-bb ",
		Year:  2022,
	})
	require.NoError(t, err)
	assert.Equal(t, "AA-01-BB", created.Plate)
	assert.Equal(t, database.VehicleStatusDefault, created.Status)

	// Normalization is idempotent: re-storing the stored plate changes
	// nothing.
	updated, err := svc.Update(created.ID, &database.Vehicle{
		Brand: "Toyota",
		Model: "RAV4",
		Plate: created.Plate,
		Year:  2022,
	})
	require.NoError(t, err)
	assert.Equal(t, "AA-01-BB", updated.Plate)
}

func TestVehicles_CreateRequiresMandatoryFields(t *testing.T) {
	svc := NewVehicles(newTestDB(t), false)

	_, err := svc.Create(&database.Vehicle{Brand: "Toyota", Model: "RAV4"})
	require.Error(t, err)
	assert.Equal(t, 400, StatusOf(err))
	assert.Equal(t, "Dados obrigatórios em falta", err.Error())
}

func TestVehicles_GetInvalidID(t *testing.T) {
	svc := NewVehicles(newTestDB(t), false)

	_, err := svc.Get(0)
	require.Error(t, err)
	assert.Equal(t, 400, StatusOf(err))
	assert.Equal(t, "ID inválido", err.Error())
}

func TestVehicles_GetAnnotations(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicles(db, false)

	client := seedClient(t, db, "ana")
	vehicle := seedVehicle(t, db, "AA-01-AA")
	employee := seedEmployee(t, db, "marta")

	r1 := seedReservation(t, db, client, vehicle, employee, database.ReservationStatusCompleted, "2025-01-01 10:00:00")
	r2 := seedReservation(t, db, client, vehicle, employee, database.ReservationStatusActive, "2025-03-01 10:00:00")
	m1 := seedMaintenance(t, db, vehicle, "2025-02-01 00:00:00")

	view, err := svc.Get(vehicle)
	require.NoError(t, err)

	assert.True(t, view.HasReservation)
	require.NotNil(t, view.ReservationStatus)
	assert.Equal(t, database.ReservationStatusActive, *view.ReservationStatus)
	require.NotNil(t, view.ReservationID)
	assert.Equal(t, r2, *view.ReservationID)
	assert.Equal(t, []int64{r2, r1}, view.ReservationIDs)

	assert.True(t, view.HasMaintenance)
	require.NotNil(t, view.MaintenanceID)
	assert.Equal(t, m1, *view.MaintenanceID)
	assert.Equal(t, []int64{m1}, view.MaintenanceIDs)
}

func TestVehicles_ListAppliesFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicles(db, false)

	seedVehicle(t, db, "AA-01-AA")
	_, err := db.CreateVehicle(&database.Vehicle{
		Brand: "Renault", Model: "Clio", Plate: "BB-02-BB", Year: 2020,
		Status: "Alugado",
	})
	require.NoError(t, err)

	views, err := svc.List(VehicleListParams{Brand: "Renault"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Clio", views[0].Model)

	views, err = svc.List(VehicleListParams{Status: database.VehicleStatusDefault})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "RAV4", views[0].Model)
}

func TestVehicles_ListLegacyCompatIgnoresFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicles(db, true)

	seedVehicle(t, db, "AA-01-AA")
	_, err := db.CreateVehicle(&database.Vehicle{
		Brand: "Renault", Model: "Clio", Plate: "BB-02-BB", Year: 2020,
		Status: "Alugado",
	})
	require.NoError(t, err)

	// The original API accepted filters without applying them.
	views, err := svc.List(VehicleListParams{Brand: "Renault"})
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestVehicles_DeleteBlockedByReservationWritesAuditRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicles(db, false)

	client := seedClient(t, db, "ana")
	vehicle := seedVehicle(t, db, "AA-01-AA")
	employee := seedEmployee(t, db, "marta")
	seedReservation(t, db, client, vehicle, employee, database.ReservationStatusCancelled, "2025-03-01 10:00:00")

	_, err := svc.Delete(vehicle)
	require.Error(t, err)
	assert.Equal(t, 400, StatusOf(err))
	assert.Equal(t, "Não é possível apagar: o veículo possui reservas ativas ou canceladas.", err.Error())

	// Vehicle survives and the blocked attempt is recorded.
	saved, dbErr := db.GetVehicle(vehicle)
	require.NoError(t, dbErr)
	require.NotNil(t, saved)

	count, dbErr := db.CountVehicleDeleteLogs(vehicle)
	require.NoError(t, dbErr)
	assert.Equal(t, 1, count)
}

func TestVehicles_DeleteBlockedByMaintenance(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicles(db, false)

	vehicle := seedVehicle(t, db, "AA-01-AA")
	seedMaintenance(t, db, vehicle, "2025-02-01 00:00:00")

	_, err := svc.Delete(vehicle)
	require.Error(t, err)
	assert.Equal(t, 400, StatusOf(err))
	assert.Equal(t, "Não é possível apagar: o veículo possui manutenções registadas.", err.Error())

	count, dbErr := db.CountVehicleDeleteLogs(vehicle)
	require.NoError(t, dbErr)
	assert.Equal(t, 1, count)
}

func TestVehicles_DeleteAllowedWithCompletedReservations(t *testing.T) {
	db := newTestDB(t)
	svc := NewVehicles(db, false)

	client := seedClient(t, db, "ana")
	vehicle := seedVehicle(t, db, "AA-01-AA")
	employee := seedEmployee(t, db, "marta")
	seedReservation(t, db, client, vehicle, employee, database.ReservationStatusCompleted, "2025-01-01 10:00:00")

	ack, err := svc.Delete(vehicle)
	require.NoError(t, err)
	assert.Equal(t, "Veículo removido com sucesso (não possui manutenções ou reservas bloqueantes)", ack.Message)

	saved, dbErr := db.GetVehicle(vehicle)
	require.NoError(t, dbErr)
	assert.Nil(t, saved)

	// An allowed delete leaves no audit trail.
	count, dbErr := db.CountVehicleDeleteLogs(vehicle)
	require.NoError(t, dbErr)
	assert.Zero(t, count)
}

func TestVehicles_DeleteUnknownID(t *testing.T) {
	svc := NewVehicles(newTestDB(t), false)

	_, err := svc.Delete(9999)
	require.Error(t, err)
	assert.Equal(t, 404, StatusOf(err))
}
