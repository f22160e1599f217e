package store

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/internal/ledger"
)

// CompletionListener is notified whenever any item transitions to completed.
// The day carried is always the day the transition happened on, not the day
// the item was created.
type CompletionListener interface {
	ItemCompleted(day ledger.Day)
}

// Store holds the ordered in-memory todo list, newest-created first. Every
// mutation is applied locally first, persisted to the cache, and then
// reconciled against the remote. The mutex guards the list only; network
// calls always happen outside of it.
type Store struct {
	mu        sync.Mutex
	remote    Remote
	cache     Cache
	logger    *slog.Logger
	now       func() time.Time
	newID     func() uuid.UUID
	items     []*Item
	listeners []CompletionListener
}

func New(remote Remote, cache Cache) *Store {
	if remote == nil || cache == nil {
		log.Fatal("on store provided nil dependencies")
	}
	return &Store{
		remote: remote,
		cache:  cache,
		logger: slog.Default().With(slog.String("component", "todo_store")),
		now:    time.Now,
		newID:  uuid.New,
	}
}

// OnItemCompleted registers a listener for completed transitions.
func (s *Store) OnItemCompleted(l CompletionListener) {
	s.listeners = append(s.listeners, l)
}

// Items returns a snapshot copy of the current list.
func (s *Store) Items() []*Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]*Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item.clone())
	}
	return items
}

// Load fetches the authoritative list and replaces the local copy wholesale.
// On any failure, including a missing token, it falls back to the last cached
// list. The cache is strictly a backup, never a merge source.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.remote.List(ctx)
	if err != nil {
		cached, cerr := s.cache.LoadTodos()
		if cerr != nil {
			return errors.New("loading cached todos: " + cerr.Error())
		}
		s.mu.Lock()
		s.items = cached
		s.mu.Unlock()
		s.logger.Info("loaded todos from cache", slog.Int("count", len(cached)), slog.String("reason", err.Error()))
		return nil
	}
	for _, item := range items {
		item.Status = StatusSynced
	}
	s.mu.Lock()
	s.items = items
	s.persistLocked()
	s.mu.Unlock()
	s.logger.Info("loaded todos from remote", slog.Int("count", len(items)))
	return nil
}

// Add inserts the new item at the head of the list immediately under a
// temporary id. On remote create success the server-assigned id and timestamp
// replace the temporary ones in place; the item never jumps or duplicates.
// On failure the item simply stays local-only.
func (s *Store) Add(ctx context.Context, title string) (*Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errorvalues.ErrEmptyTitle
	}
	item := &Item{
		ID:        s.newID(),
		Title:     title,
		CreatedAt: s.now(),
		Status:    StatusLocalOnly,
	}
	tempID := item.ID
	s.mu.Lock()
	s.items = append([]*Item{item}, s.items...)
	s.persistLocked()
	snapshot := item.clone()
	s.mu.Unlock()

	created, err := s.remote.Create(ctx, title)
	if err != nil {
		s.logger.Info("todo kept local-only", slog.String("reason", err.Error()))
		return snapshot, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.findLocked(tempID)
	if existing == nil {
		// Removed while the create was in flight, drop the late response
		return snapshot, nil
	}
	existing.ID = created.ID
	if !created.CreatedAt.IsZero() {
		existing.CreatedAt = created.CreatedAt
	}
	existing.Status = StatusSynced
	s.persistLocked()
	return existing.clone(), nil
}

// Toggle flips completed and sets or clears completedAt immediately. A
// transition to completed marks today through the registered listeners. The
// remote update carries the title too, so the server can recreate an item it
// has no record of. On remote failure the completed fields revert, but the
// day marked through the listeners stays marked; only explicit user action
// unmarks a day.
func (s *Store) Toggle(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	item := s.findLocked(id)
	if item == nil {
		s.mu.Unlock()
		return errorvalues.ErrTodoNotFound
	}
	prevCompleted := item.Completed
	prevCompletedAt := item.CompletedAt
	item.Completed = !item.Completed
	if item.Completed {
		at := s.now()
		item.CompletedAt = &at
	} else {
		item.CompletedAt = nil
	}
	item.Status = StatusPendingMutation
	completed := item.Completed
	title := item.Title
	s.persistLocked()
	s.mu.Unlock()

	if completed {
		day := ledger.DayOf(s.now())
		for _, l := range s.listeners {
			l.ItemCompleted(day)
		}
	}

	updated, err := s.remote.Update(ctx, id, UpdateRequest{Completed: &completed, Title: &title})

	s.mu.Lock()
	defer s.mu.Unlock()
	item = s.findLocked(id)
	if item == nil {
		// Deleted while the update was in flight, never resurrect it
		return nil
	}
	if err != nil {
		if errors.Is(err, errorvalues.ErrNoToken) {
			// Offline path: the optimistic flip sticks
			item.Status = StatusLocalOnly
			s.persistLocked()
			return nil
		}
		item.Completed = prevCompleted
		item.CompletedAt = prevCompletedAt
		item.Status = StatusReverted
		s.persistLocked()
		s.logger.Error("toggle reverted: remote update failed", slog.String("error", err.Error()))
		return nil
	}
	// Update-as-create may hand back a fresh server id, adopt it in place
	item.ID = updated.ID
	item.Status = StatusSynced
	s.persistLocked()
	return nil
}

// Remove deletes locally immediately and best-effort remotely. A failed
// remote delete risks silent resurrection, so it reconciles by reloading the
// whole list instead of patching locally.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if s.findLocked(id) == nil {
		s.mu.Unlock()
		return errorvalues.ErrTodoNotFound
	}
	s.removeLocked(id)
	s.persistLocked()
	s.mu.Unlock()

	err := s.remote.Delete(ctx, id)
	if err == nil || errors.Is(err, errorvalues.ErrTodoNotFound) || errors.Is(err, errorvalues.ErrNoToken) {
		return nil
	}
	s.logger.Error("remote delete failed, reloading list", slog.String("error", err.Error()))
	return s.Load(ctx)
}

// ClearCompleted removes every completed item as a batch. Partial remote
// failures resolve the same way a failed single delete does, by full reload.
func (s *Store) ClearCompleted(ctx context.Context) error {
	s.mu.Lock()
	ids := make([]uuid.UUID, 0)
	for _, item := range s.items {
		if item.Completed {
			ids = append(ids, item.ID)
		}
	}
	for _, id := range ids {
		s.removeLocked(id)
	}
	s.persistLocked()
	s.mu.Unlock()

	failed := false
	for _, id := range ids {
		err := s.remote.Delete(ctx, id)
		if err != nil && !errors.Is(err, errorvalues.ErrTodoNotFound) && !errors.Is(err, errorvalues.ErrNoToken) {
			s.logger.Error("remote delete failed during clear", slog.String("id", id.String()), slog.String("error", err.Error()))
			failed = true
		}
	}
	if failed {
		return s.Load(ctx)
	}
	return nil
}

// Reset drops the whole local list and persists the empty state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persistLocked()
}

func (s *Store) findLocked(id uuid.UUID) *Item {
	for _, item := range s.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (s *Store) removeLocked(id uuid.UUID) {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) persistLocked() {
	if err := s.cache.SaveTodos(s.items); err != nil {
		s.logger.Error("persisting todos cache failed", slog.String("error", err.Error()))
	}
}
