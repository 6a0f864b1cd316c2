package service

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/car4me/car4me/internal/database"
)

func TestMaintenanceRecords_CreateNormalizesDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaintenanceRecords(db)

	vehicle := seedVehicle(t, db, "AA-01-AA")

	created, err := svc.Create(&database.Maintenance{
		VehicleID:   vehicle,
		Description: "Troca de óleo",
		Date:        "2025-02-01T09:30:00.000Z",
		Cost:        80,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01 09:30:00", created.Date)
}

func TestMaintenanceRecords_CreateRejectsBadDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaintenanceRecords(db)

	vehicle := seedVehicle(t, db, "AA-01-AA")

	_, err := svc.Create(&database.Maintenance{
		VehicleID:   vehicle,
		Description: "Troca de óleo",
		Date:        "02/01/2025",
	})
	require.Error(t, err)
	assert.Equal(t, "Data de manutenção inválida", err.Error())
}

func TestMaintenanceRecords_ListByVehicle(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaintenanceRecords(db)

	v1 := seedVehicle(t, db, "AA-01-AA")
	v2 := seedVehicle(t, db, "BB-02-BB")
	seedMaintenance(t, db, v1, "2025-01-15 00:00:00")
	seedMaintenance(t, db, v1, "2025-02-15 00:00:00")
	seedMaintenance(t, db, v2, "2025-03-15 00:00:00")

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forV1, err := svc.List(strconv.FormatInt(v1, 10))
	require.NoError(t, err)
	assert.Len(t, forV1, 2)
}

func TestMaintenanceRecords_GetUnknownID(t *testing.T) {
	svc := NewMaintenanceRecords(newTestDB(t))

	_, err := svc.Get(9999)
	require.Error(t, err)
	assert.Equal(t, 404, StatusOf(err))
	assert.Equal(t, "Manutenção não encontrada", err.Error())
}
