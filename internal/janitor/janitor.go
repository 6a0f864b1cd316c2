// Package janitor prunes aged vehicle-delete audit rows on a schedule.
package janitor

import (
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/car4me/car4me/internal/database"
)

// Nightly run, well outside rental-desk hours.
const pruneSchedule = "0 3 * * *"

// Janitor removes audit log rows older than the retention window.
type Janitor struct {
	db            *database.DB
	retentionDays int
	cron          *cron.Cron
	mu            sync.Mutex
	running       bool
}

// New creates a janitor keeping retentionDays of audit history. A zero or
// negative retention disables pruning.
func New(db *database.DB, retentionDays int) *Janitor {
	return &Janitor{
		db:            db,
		retentionDays: retentionDays,
		cron:          cron.New(),
	}
}

// Start schedules the nightly prune and runs one pass immediately.
func (j *Janitor) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running || j.retentionDays <= 0 {
		return nil
	}

	if _, err := j.cron.AddFunc(pruneSchedule, j.prune); err != nil {
		return err
	}

	j.cron.Start()
	j.running = true
	log.Info().Int("retention_days", j.retentionDays).Msg("Audit log janitor started")

	go j.prune()
	return nil
}

// Stop halts the scheduler. In-flight prunes finish on their own.
func (j *Janitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return
	}
	j.cron.Stop()
	j.running = false
	log.Info().Msg("Audit log janitor stopped")
}

func (j *Janitor) prune() {
	removed, err := j.db.PruneVehicleDeleteLogs(j.retentionDays)
	if err != nil {
		log.Error().Err(err).Msg("Failed to prune vehicle delete logs")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Pruned vehicle delete logs")
	}
}
