package store

import (
	"errors"
	"strings"
	"time"

	"github.com/nmorel/habitude/internal/ledger"
)

const snapshotVersion = 1

var ErrBadSnapshot = errors.New("unsupported snapshot version")

// Snapshot is the transportable export of the todos and the activity ledger.
type Snapshot struct {
	Todos         []*Item      `json:"todos"`
	ActivityDates []ledger.Day `json:"activityDates"`
	ExportedAt    time.Time    `json:"exportedAt"`
	Version       int          `json:"version"`
}

// Export captures the current todos and marked days.
func Export(todos *Store, activity *LedgerRecorder) *Snapshot {
	return &Snapshot{
		Todos:         todos.Items(),
		ActivityDates: activity.Days(),
		ExportedAt:    time.Now(),
		Version:       snapshotVersion,
	}
}

// Import replaces both collections with the snapshot's content and persists
// them. Imported items start over as local-only under fresh identifiers;
// titles, completion state and ledger membership are preserved exactly.
func Import(todos *Store, activity *LedgerRecorder, snap *Snapshot) error {
	if snap == nil || snap.Version != snapshotVersion {
		return ErrBadSnapshot
	}
	todos.mu.Lock()
	items := make([]*Item, 0, len(snap.Todos))
	for _, src := range snap.Todos {
		if strings.TrimSpace(src.Title) == "" {
			continue
		}
		item := src.clone()
		item.ID = todos.newID()
		item.Status = StatusLocalOnly
		if item.CreatedAt.IsZero() {
			item.CreatedAt = todos.now()
		}
		if !item.Completed {
			item.CompletedAt = nil
		} else if item.CompletedAt == nil {
			at := todos.now()
			item.CompletedAt = &at
		}
		items = append(items, item)
	}
	todos.items = items
	todos.persistLocked()
	todos.mu.Unlock()

	activity.mu.Lock()
	activity.ledger.Reset()
	for _, day := range snap.ActivityDates {
		if day.Valid() {
			activity.ledger.Mark(day)
		}
	}
	activity.persistLocked()
	activity.mu.Unlock()
	return nil
}
