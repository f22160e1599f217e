// Package store keeps a responsive local copy of the user's todos while a
// slower, fallible remote copy stays the source of truth. Mutations are
// applied optimistically and reconciled against the remote afterwards.
package store

import (
	"time"

	"github.com/google/uuid"
)

// Status is the per-item reconciliation state. It governs behavior and is
// never shown to the user.
type Status int

const (
	// StatusLocalOnly: created locally, remote create not confirmed.
	StatusLocalOnly Status = iota
	// StatusSynced: local and remote agree.
	StatusSynced
	// StatusPendingMutation: a local mutation is applied and a remote request
	// is in flight.
	StatusPendingMutation
	// StatusReverted: the remote request failed and the optimistic change was
	// rolled back to the last known-good state.
	StatusReverted
)

func (s Status) String() string {
	switch s {
	case StatusLocalOnly:
		return "local_only"
	case StatusSynced:
		return "synced"
	case StatusPendingMutation:
		return "pending_mutation"
	case StatusReverted:
		return "reverted"
	}
	return "unknown"
}

type Item struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Status      Status     `json:"status,omitempty"`
}

func (i *Item) clone() *Item {
	cp := *i
	if i.CompletedAt != nil {
		at := *i.CompletedAt
		cp.CompletedAt = &at
	}
	return &cp
}
