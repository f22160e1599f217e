package store

import (
	"log"
	"log/slog"
	"sync"
	"time"

	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/internal/ledger"
)

// LedgerRecorder owns the client-side Activity Ledger. It listens for
// completed transitions from the Store and marks the day they happened on,
// persisting the ledger through the cache after every change.
type LedgerRecorder struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	cache  Cache
	logger *slog.Logger
	now    func() time.Time
}

func NewLedgerRecorder(cache Cache) (*LedgerRecorder, error) {
	if cache == nil {
		log.Fatal("on ledger recorder provided nil cache")
	}
	days, err := cache.LoadDays()
	if err != nil {
		return nil, err
	}
	return &LedgerRecorder{
		ledger: ledger.FromDays(days),
		cache:  cache,
		logger: slog.Default().With(slog.String("component", "ledger_recorder")),
		now:    time.Now,
	}, nil
}

// ItemCompleted marks the given day. Once marked, a day survives any later
// revert of the toggle that produced it.
func (lr *LedgerRecorder) ItemCompleted(day ledger.Day) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.ledger.Mark(day)
	lr.persistLocked()
}

func (lr *LedgerRecorder) MarkDay(day ledger.Day) error {
	if !day.Valid() || day > ledger.DayOf(lr.now()) {
		return errorvalues.ErrDayNotAllowed
	}
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.ledger.Mark(day)
	lr.persistLocked()
	return nil
}

func (lr *LedgerRecorder) UnmarkDay(day ledger.Day) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.ledger.Unmark(day)
	lr.persistLocked()
}

func (lr *LedgerRecorder) IsMarked(day ledger.Day) bool {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.ledger.IsMarked(day)
}

func (lr *LedgerRecorder) Days() []ledger.Day {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.ledger.Days()
}

// Reset clears the whole ledger. Explicit user action only.
func (lr *LedgerRecorder) Reset() {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.ledger.Reset()
	lr.persistLocked()
}

func (lr *LedgerRecorder) CurrentStreak() int {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return ledger.CurrentStreak(lr.ledger, lr.now())
}

func (lr *LedgerRecorder) persistLocked() {
	if err := lr.cache.SaveDays(lr.ledger.Days()); err != nil {
		lr.logger.Error("persisting activity cache failed", slog.String("error", err.Error()))
	}
}
