package models

import "time"

// Predicate tests a single ledger entry.
type Predicate func(Booking) bool

func ForRoom(roomID string) Predicate {
	return func(b Booking) bool { return b.RoomID == roomID }
}

func ByUser(name string) Predicate {
	return func(b Booking) bool { return b.UserName == name }
}

func StartsAt(t time.Time) Predicate {
	return func(b Booking) bool { return b.Start.Equal(t) }
}

func EndsAt(t time.Time) Predicate {
	return func(b Booking) bool { return b.End.Equal(t) }
}

func StartsAfter(t time.Time) Predicate {
	return func(b Booking) bool { return b.Start.After(t) }
}

func StartsBefore(t time.Time) Predicate {
	return func(b Booking) bool { return b.Start.Before(t) }
}

func CreatedAfter(t time.Time) Predicate {
	return func(b Booking) bool { return b.CreatedAt.After(t) }
}

// MatchAll reports whether b satisfies every predicate. An empty set matches.
func MatchAll(b Booking, preds []Predicate) bool {
	for _, p := range preds {
		if !p(b) {
			return false
		}
	}
	return true
}

// BookingQuery is the wire form of a predicate set. Empty fields are ignored.
// Seeded intervals have ledger entries too (user_name "seed"), so a query
// naming only a room or a time matches them, and an empty query matches
// whenever the ledger is non-empty.
type BookingQuery struct {
	RoomID       string `json:"room_id,omitempty" form:"room_id"`
	UserName     string `json:"user_name,omitempty" form:"user_name"`
	StartTime    string `json:"start_time,omitempty" form:"start_time"`
	EndTime      string `json:"end_time,omitempty" form:"end_time"`
	StartsAfter  string `json:"starts_after,omitempty" form:"starts_after"`
	StartsBefore string `json:"starts_before,omitempty" form:"starts_before"`
	CreatedAfter string `json:"created_after,omitempty" form:"created_after"`
}

func (q BookingQuery) Predicates() ([]Predicate, error) {
	var out []Predicate
	if q.RoomID != "" {
		out = append(out, ForRoom(q.RoomID))
	}
	if q.UserName != "" {
		out = append(out, ByUser(q.UserName))
	}
	timed := []struct {
		val string
		mk  func(time.Time) Predicate
	}{
		{q.StartTime, StartsAt},
		{q.EndTime, EndsAt},
		{q.StartsAfter, StartsAfter},
		{q.StartsBefore, StartsBefore},
		{q.CreatedAfter, CreatedAfter},
	}
	for _, f := range timed {
		if f.val == "" {
			continue
		}
		t, err := ParseInstant(f.val)
		if err != nil {
			return nil, err
		}
		out = append(out, f.mk(t))
	}
	return out, nil
}
