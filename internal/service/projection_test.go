package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/car4me/car4me/internal/database"
)

func TestSummarizeReservations_Empty(t *testing.T) {
	summary := summarizeReservations(nil)

	assert.False(t, summary.Has)
	assert.Nil(t, summary.LastStatus)
	assert.Nil(t, summary.LastID)
	assert.Zero(t, summary.Total)
	assert.Empty(t, summary.IDs)
}

func TestSummarizeReservations_MostRecentByStartDate(t *testing.T) {
	refs := []database.ReservationRef{
		{ID: 1, OwnerID: 7, Status: database.ReservationStatusCompleted, Start: "2025-01-01 10:00:00"},
		{ID: 2, OwnerID: 7, Status: database.ReservationStatusActive, Start: "2025-03-01 10:00:00"},
		{ID: 3, OwnerID: 7, Status: database.ReservationStatusCancelled, Start: "2025-02-01 10:00:00"},
	}

	summary := summarizeReservations(refs)

	require.True(t, summary.Has)
	require.NotNil(t, summary.LastStatus)
	assert.Equal(t, database.ReservationStatusActive, *summary.LastStatus)
	require.NotNil(t, summary.LastID)
	assert.Equal(t, int64(2), *summary.LastID)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, []int64{2, 3, 1}, summary.IDs)
}

func TestSummarizeReservations_EqualStartsBreakTiesByID(t *testing.T) {
	refs := []database.ReservationRef{
		{ID: 5, OwnerID: 1, Status: database.ReservationStatusCompleted, Start: "2025-01-01 10:00:00"},
		{ID: 9, OwnerID: 1, Status: database.ReservationStatusActive, Start: "2025-01-01 10:00:00"},
	}

	summary := summarizeReservations(refs)

	require.NotNil(t, summary.LastID)
	assert.Equal(t, int64(9), *summary.LastID)
	assert.Equal(t, []int64{9, 5}, summary.IDs)
}

func TestSummarizeReservations_DoesNotMutateInput(t *testing.T) {
	refs := []database.ReservationRef{
		{ID: 1, Start: "2025-01-01 10:00:00"},
		{ID: 2, Start: "2025-03-01 10:00:00"},
	}

	summarizeReservations(refs)

	assert.Equal(t, int64(1), refs[0].ID)
	assert.Equal(t, int64(2), refs[1].ID)
}

func TestSummarizeMaintenance(t *testing.T) {
	summary := summarizeMaintenance(nil)
	assert.False(t, summary.Has)

	refs := []database.MaintenanceRef{
		{ID: 1, VehicleID: 3, Date: "2025-01-15 00:00:00"},
		{ID: 2, VehicleID: 3, Date: "2025-06-10 00:00:00"},
	}
	summary = summarizeMaintenance(refs)

	require.True(t, summary.Has)
	require.NotNil(t, summary.LastID)
	assert.Equal(t, int64(2), *summary.LastID)
	assert.Equal(t, []int64{2, 1}, summary.IDs)
}

func TestGroupReservationRefs(t *testing.T) {
	refs := []database.ReservationRef{
		{ID: 1, OwnerID: 10},
		{ID: 2, OwnerID: 20},
		{ID: 3, OwnerID: 10},
	}

	grouped := groupReservationRefs(refs)

	assert.Len(t, grouped, 2)
	assert.Len(t, grouped[10], 2)
	assert.Len(t, grouped[20], 1)
	assert.Empty(t, grouped[30])
}
