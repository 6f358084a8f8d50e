package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"roombooking/internal/models"
	"roombooking/internal/repo"
	"roombooking/internal/seed"
)

// Store is the in-memory indexed catalog and ledger, written through to
// their repos. Nothing is readable until Initialize has run.
type Store struct {
	rooms    repo.CatalogRepo
	bookings repo.LedgerRepo
	log      *zap.Logger
	now      func() time.Time

	initMu sync.Mutex
	cat    atomic.Pointer[catalog]
	led    atomic.Pointer[ledger]
}

type StoreOption func(*Store)

func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now as the source of created_at stamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(rooms repo.CatalogRepo, bookings repo.LedgerRepo, opts ...StoreOption) *Store {
	s := &Store{rooms: rooms, bookings: bookings, log: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) clock() time.Time { return models.WallClock(s.now()) }

func (s *Store) views() (*catalog, *ledger, error) {
	c, l := s.cat.Load(), s.led.Load()
	if c == nil || l == nil {
		return nil, nil, ErrNotInitialized
	}
	return c, l, nil
}

// Report describes what Initialize found when it compared the two records.
type Report struct {
	Seeded   bool
	Repaired bool
	Rooms    int
	Bookings int

	// catalog intervals without a ledger entry, as "room [start, end)"
	MissingInLedger []string
	// ledger booking ids whose interval is absent from the catalog
	MissingInCatalog []string
	// ledger booking ids referencing rooms outside the catalog
	Dangling []string
	// pairs of ledger booking ids whose intervals overlap in one room
	Overlapping [][2]string
}

// needsRebuild reports whether the durable catalog differs from what the
// ledger implies. Dangling entries have no room to rebuild, so they alone
// never trigger a rewrite.
func (r Report) needsRebuild() bool {
	return len(r.MissingInLedger) > 0 || len(r.MissingInCatalog) > 0
}

func (r Report) Consistent() bool {
	return len(r.MissingInLedger) == 0 && len(r.MissingInCatalog) == 0 &&
		len(r.Dangling) == 0 && len(r.Overlapping) == 0
}

// Initialize loads the catalog and the ledger. A missing catalog is created
// from seedRooms, and if the ledger is empty as well every seeded interval gets
// a ledger entry. When the two records disagree the ledger wins: each room's
// intervals are rebuilt from it and the catalog is rewritten. Ledger entries
// for rooms outside the catalog are reported and skipped. Calls after the
// first successful one do nothing.
func (s *Store) Initialize(ctx context.Context, seedRooms []models.Room) (Report, error) {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.cat.Load() != nil {
		return Report{}, nil
	}

	rooms, ok, err := s.rooms.Load(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("%w: load catalog: %w", ErrStorage, err)
	}
	seeded := !ok
	if seeded {
		rooms = cloneRooms(seedRooms)
		s.log.Info("no persisted catalog, seeding", zap.Int("rooms", len(rooms)))
	}

	entries, err := s.bookings.LoadAll(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("%w: load ledger: %w", ErrStorage, err)
	}
	if seeded && len(entries) == 0 {
		entries = seedEntries(rooms, s.clock())
		if err := s.bookings.AppendMany(ctx, entries); err != nil {
			return Report{}, fmt.Errorf("%w: seed ledger: %w", ErrStorage, err)
		}
	}

	rebuilt, rep := reconcile(rooms, entries)
	rep.Seeded = seeded
	if !rep.Consistent() {
		s.log.Warn("catalog and ledger disagree, rebuilding catalog from ledger",
			zap.Strings("missing_in_ledger", rep.MissingInLedger),
			zap.Strings("missing_in_catalog", rep.MissingInCatalog),
			zap.Strings("dangling", rep.Dangling),
			zap.Int("overlapping_pairs", len(rep.Overlapping)),
		)
		for _, p := range rep.Overlapping {
			s.log.Error("ledger holds overlapping bookings", zap.String("first", p[0]), zap.String("second", p[1]))
		}
	}
	if seeded || rep.needsRebuild() {
		if err := s.rooms.SaveAll(ctx, rebuilt); err != nil {
			return Report{}, fmt.Errorf("%w: save catalog: %w", ErrStorage, err)
		}
		rep.Repaired = rep.needsRebuild()
	}

	s.led.Store(newLedger(s.bookings, entries))
	s.cat.Store(newCatalog(rebuilt))
	s.log.Info("store initialized",
		zap.Int("rooms", rep.Rooms), zap.Int("bookings", rep.Bookings),
		zap.Bool("seeded", rep.Seeded), zap.Bool("repaired", rep.Repaired))
	return rep, nil
}

func cloneRooms(in []models.Room) []models.Room {
	out := make([]models.Room, len(in))
	for i, r := range in {
		r.Facilities = append([]string{}, r.Facilities...)
		r.Bookings = append([]models.Interval{}, r.Bookings...)
		out[i] = r
	}
	return out
}

func seedEntries(rooms []models.Room, at time.Time) []models.Booking {
	var out []models.Booking
	for _, r := range rooms {
		for _, iv := range r.Bookings {
			out = append(out, models.Booking{
				ID:        newBookingID(),
				RoomID:    r.ID,
				UserName:  seed.UserName,
				Start:     iv.Start,
				End:       iv.End,
				CreatedAt: at,
			})
		}
	}
	return out
}

// reconcile rebuilds every room's intervals from the ledger and reports how
// the catalog differed.
func reconcile(rooms []models.Room, entries []models.Booking) ([]models.Room, Report) {
	rep := Report{Rooms: len(rooms), Bookings: len(entries)}
	known := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		known[r.ID] = true
	}
	byRoom := make(map[string][]models.Booking)
	for _, b := range entries {
		if !known[b.RoomID] {
			rep.Dangling = append(rep.Dangling, b.ID)
			continue
		}
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	out := make([]models.Room, len(rooms))
	for i, r := range rooms {
		led := byRoom[r.ID]

		inLedger := make(map[string]int, len(led))
		for _, b := range led {
			inLedger[b.Interval().String()]++
		}
		for _, iv := range r.Bookings {
			k := iv.String()
			if inLedger[k] > 0 {
				inLedger[k]--
				continue
			}
			rep.MissingInLedger = append(rep.MissingInLedger, r.ID+" "+k)
		}

		inCatalog := make(map[string]int, len(r.Bookings))
		for _, iv := range r.Bookings {
			inCatalog[iv.String()]++
		}
		for _, b := range led {
			k := b.Interval().String()
			if inCatalog[k] > 0 {
				inCatalog[k]--
				continue
			}
			rep.MissingInCatalog = append(rep.MissingInCatalog, b.ID)
		}

		sorted := append([]models.Booking(nil), led...)
		sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Start.Before(sorted[b].Start) })
		ivs := make([]models.Interval, 0, len(sorted))
		for j, b := range sorted {
			for k := j + 1; k < len(sorted) && sorted[k].Start.Before(b.End); k++ {
				rep.Overlapping = append(rep.Overlapping, [2]string{b.ID, sorted[k].ID})
			}
			ivs = append(ivs, b.Interval())
		}

		r.Facilities = append([]string{}, r.Facilities...)
		r.Bookings = ivs
		out[i] = r
	}
	return out, rep
}
