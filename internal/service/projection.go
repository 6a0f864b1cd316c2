package service

import (
	"sort"

	"github.com/car4me/car4me/internal/database"
)

// ReservationSummary is the read-side aggregate attached to clients,
// vehicles and employees: whether any reservation exists, the status and ID
// of the most recent one (by start date), the total count, and every
// reservation ID.
type ReservationSummary struct {
	Has        bool
	LastStatus *string
	LastID     *int64
	Total      int
	IDs        []int64
}

// MaintenanceSummary is the read-side aggregate of a vehicle's maintenance
// records.
type MaintenanceSummary struct {
	Has    bool
	LastID *int64
	IDs    []int64
}

// summarizeReservations folds flat reservation reference rows into the
// aggregate. Recency is by start date descending; the store layout sorts
// lexicographically in chronological order, with the ID breaking ties.
func summarizeReservations(refs []database.ReservationRef) ReservationSummary {
	if len(refs) == 0 {
		return ReservationSummary{}
	}

	sorted := make([]database.ReservationRef, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start > sorted[j].Start
		}
		return sorted[i].ID > sorted[j].ID
	})

	ids := make([]int64, len(sorted))
	for i, ref := range sorted {
		ids[i] = ref.ID
	}

	last := sorted[0]
	return ReservationSummary{
		Has:        true,
		LastStatus: &last.Status,
		LastID:     &last.ID,
		Total:      len(sorted),
		IDs:        ids,
	}
}

// summarizeMaintenance folds flat maintenance reference rows into the
// aggregate, most recent by date first.
func summarizeMaintenance(refs []database.MaintenanceRef) MaintenanceSummary {
	if len(refs) == 0 {
		return MaintenanceSummary{}
	}

	sorted := make([]database.MaintenanceRef, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].ID > sorted[j].ID
	})

	ids := make([]int64, len(sorted))
	for i, ref := range sorted {
		ids[i] = ref.ID
	}

	last := sorted[0]
	return MaintenanceSummary{
		Has:    true,
		LastID: &last.ID,
		IDs:    ids,
	}
}

// groupReservationRefs splits reference rows per owner for list-level
// annotation.
func groupReservationRefs(refs []database.ReservationRef) map[int64][]database.ReservationRef {
	grouped := make(map[int64][]database.ReservationRef)
	for _, ref := range refs {
		grouped[ref.OwnerID] = append(grouped[ref.OwnerID], ref)
	}
	return grouped
}
