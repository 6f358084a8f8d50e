package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func mustInterval(t *testing.T, s, e string) Interval {
	t.Helper()
	iv, err := ParseInterval(s, e)
	if err != nil {
		t.Fatalf("ParseInterval(%q, %q): %v", s, e, err)
	}
	return iv
}

func TestParseIntervalRejectsInvertedAndGarbage(t *testing.T) {
	cases := [][2]string{
		{"2023-10-01 10:00", "2023-10-01 10:00"},
		{"2023-10-01 11:00", "2023-10-01 10:00"},
		{"2023-10-01T10:00", "2023-10-01 11:00"},
		{"", "2023-10-01 11:00"},
	}
	for _, c := range cases {
		if _, err := ParseInterval(c[0], c[1]); !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("ParseInterval(%q, %q) = %v, want ErrInvalidInterval", c[0], c[1], err)
		}
	}
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	a := mustInterval(t, "2023-10-01 09:00", "2023-10-01 10:30")
	touching := mustInterval(t, "2023-10-01 10:30", "2023-10-01 11:00")
	before := mustInterval(t, "2023-10-01 08:00", "2023-10-01 09:00")
	inside := mustInterval(t, "2023-10-01 09:15", "2023-10-01 09:45")
	straddle := mustInterval(t, "2023-10-01 10:00", "2023-10-01 11:00")

	if a.Overlaps(touching) || touching.Overlaps(a) {
		t.Error("touching at end must not overlap")
	}
	if a.Overlaps(before) || before.Overlaps(a) {
		t.Error("touching at start must not overlap")
	}
	if !a.Overlaps(inside) || !inside.Overlaps(a) {
		t.Error("contained interval must overlap")
	}
	if !a.Overlaps(straddle) {
		t.Error("straddling interval must overlap")
	}
}

func TestIntervalJSONPairForm(t *testing.T) {
	iv := mustInterval(t, "2023-10-01 09:00", "2023-10-01 10:30")
	b, err := json.Marshal(iv)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `["2023-10-01 09:00","2023-10-01 10:30"]` {
		t.Fatalf("got %s", b)
	}
	var back Interval
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(iv) {
		t.Fatalf("got %v, want %v", back, iv)
	}
	if err := json.Unmarshal([]byte(`["2023-10-01 09:00"]`), &back); err == nil {
		t.Fatal("expected error for single element pair")
	}
}

func TestBookingJSONUsesLedgerLayouts(t *testing.T) {
	iv := mustInterval(t, "2023-10-01 10:30", "2023-10-01 11:00")
	created := time.Date(2023, 9, 30, 18, 4, 5, 0, time.UTC)
	bk := Booking{ID: "b1", RoomID: "R101", UserName: "alice", Start: iv.Start, End: iv.End, CreatedAt: created}

	raw, err := json.Marshal(bk)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatal(err)
	}
	if fields["created_at"] != "2023-09-30 18:04:05" || fields["start_time"] != "2023-10-01 10:30" {
		t.Fatalf("unexpected encoding: %s", raw)
	}

	var back Booking
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if back != bk {
		t.Fatalf("got %+v, want %+v", back, bk)
	}
}

func TestWallClockKeepsLocalReading(t *testing.T) {
	zone := time.FixedZone("X", 5*3600)
	in := time.Date(2024, 2, 3, 4, 5, 6, 789, zone)
	got := WallClock(in)
	want := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBookingQueryPredicates(t *testing.T) {
	iv := mustInterval(t, "2023-10-01 10:30", "2023-10-01 11:00")
	bk := Booking{ID: "b1", RoomID: "R101", UserName: "alice", Start: iv.Start, End: iv.End,
		CreatedAt: time.Date(2023, 10, 1, 8, 0, 0, 0, time.UTC)}

	q := BookingQuery{RoomID: "R101", UserName: "alice", StartsAfter: "2023-10-01 10:00"}
	preds, err := q.Predicates()
	if err != nil {
		t.Fatal(err)
	}
	if !MatchAll(bk, preds) {
		t.Fatal("expected match")
	}

	q.UserName = "bob"
	preds, _ = q.Predicates()
	if MatchAll(bk, preds) {
		t.Fatal("predicates must be ANDed")
	}

	if _, err := (BookingQuery{CreatedAfter: "yesterday"}).Predicates(); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("got %v, want ErrInvalidInterval", err)
	}
	if !MatchAll(bk, nil) {
		t.Fatal("empty set must match")
	}
	t.Log("✓ BookingQuery predicates")
}
