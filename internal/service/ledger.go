package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"roombooking/internal/models"
	"roombooking/internal/repo"
)

// ledger indexes every booking in memory and writes through to its repo.
// Writes are serialized so created_at never goes backwards.
type ledger struct {
	repo repo.LedgerRepo

	appendMu sync.Mutex
	last     time.Time // latest created_at persisted, guarded by appendMu

	mu    sync.RWMutex
	byID  map[string]models.Booking
	order []string
}

// errOutcomeUnknown marks a failed append whose entry may still have been
// stored.
var errOutcomeUnknown = errors.New("ledger append outcome unknown")

const lookupTimeout = 5 * time.Second

func newLedger(r repo.LedgerRepo, entries []models.Booking) *ledger {
	l := &ledger{repo: r, byID: make(map[string]models.Booking, len(entries))}
	for _, b := range entries {
		l.index(b)
		if b.CreatedAt.After(l.last) {
			l.last = b.CreatedAt
		}
	}
	return l
}

func (l *ledger) index(b models.Booking) {
	if _, dup := l.byID[b.ID]; !dup {
		l.order = append(l.order, b.ID)
	}
	l.byID[b.ID] = b
}

// persist stores b durably without making it visible to readers; publish
// does that. It returns the entry as stored, whose CreatedAt may have been
// raised to keep the order monotonic. When Append fails, the record is asked
// whether the entry landed anyway: if it did, persist succeeds; if that cannot
// be told, the error also wraps errOutcomeUnknown.
func (l *ledger) persist(ctx context.Context, b models.Booking) (models.Booking, error) {
	l.appendMu.Lock()
	defer l.appendMu.Unlock()

	if b.CreatedAt.Before(l.last) {
		b.CreatedAt = l.last
	}
	if err := l.repo.Append(ctx, b); err != nil {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		landed, lerr := l.repo.Has(lctx, b.ID)
		cancel()
		switch {
		case lerr != nil:
			return models.Booking{}, fmt.Errorf("%w: %w: %w (lookup: %v)", ErrStorage, errOutcomeUnknown, err, lerr)
		case !landed:
			return models.Booking{}, fmt.Errorf("%w: ledger append: %w", ErrStorage, err)
		}
	}
	l.last = b.CreatedAt
	return b, nil
}

func (l *ledger) publish(b models.Booking) {
	l.mu.Lock()
	l.index(b)
	l.mu.Unlock()
}

func (l *ledger) all() map[string]models.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]models.Booking, len(l.byID))
	for k, v := range l.byID {
		out[k] = v
	}
	return out
}

// find reports whether at least one entry satisfies every predicate.
func (l *ledger) find(preds []models.Predicate) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, id := range l.order {
		if models.MatchAll(l.byID[id], preds) {
			return true
		}
	}
	return false
}

func (l *ledger) search(preds []models.Predicate) []models.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []models.Booking
	for _, id := range l.order {
		if b := l.byID[id]; models.MatchAll(b, preds) {
			out = append(out, b)
		}
	}
	return out
}
