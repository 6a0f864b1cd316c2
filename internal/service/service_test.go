package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/car4me/car4me/internal/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func seedClient(t *testing.T, db *database.DB, name string) int64 {
	t.Helper()
	id, err := db.CreateClient(&database.Client{
		Name:  name,
		Email: name + "@example.com",
		TaxID: "123456789",
	})
	require.NoError(t, err)
	return id
}

func seedEmployee(t *testing.T, db *database.DB, name string) int64 {
	t.Helper()
	id, err := db.CreateEmployee(&database.Employee{
		Name:  name,
		Email: name + "@example.com",
	})
	require.NoError(t, err)
	return id
}

func seedVehicle(t *testing.T, db *database.DB, plate string) int64 {
	t.Helper()
	id, err := db.CreateVehicle(&database.Vehicle{
		Brand:  "Toyota",
		Model:  "RAV4",
		Plate:  plate,
		Year:   2022,
		Status: database.VehicleStatusDefault,
	})
	require.NoError(t, err)
	return id
}

func seedReservation(t *testing.T, db *database.DB, clientID, vehicleID, employeeID int64, status, start string) int64 {
	t.Helper()
	id, err := db.CreateReservation(&database.Reservation{
		ClientID:   clientID,
		VehicleID:  vehicleID,
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    "2025-12-31 00:00:00",
		TotalPrice: 100,
		Status:     status,
	})
	require.NoError(t, err)
	return id
}

func seedMaintenance(t *testing.T, db *database.DB, vehicleID int64, date string) int64 {
	t.Helper()
	id, err := db.CreateMaintenance(&database.Maintenance{
		VehicleID:   vehicleID,
		Description: "Revisão",
		Date:        date,
		Cost:        120,
	})
	require.NoError(t, err)
	return id
}
