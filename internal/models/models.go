package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Timestamps are naive wall-clock values. They are parsed as UTC and never
// converted between zones.
const (
	TimeLayout      = "2006-01-02 15:04"
	CreatedAtLayout = "2006-01-02 15:04:05"
)

var ErrInvalidInterval = errors.New("invalid interval")

// ParseTime parses a minute-granularity timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not %s", ErrInvalidInterval, s, "YYYY-MM-DD HH:MM")
	}
	return t, nil
}

// ParseInstant accepts both the minute and the second layout.
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(CreatedAtLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return ParseTime(s)
}

// WallClock drops the zone of t, keeping its local reading, at second precision.
func WallClock(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, 0, time.UTC)
}

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseTime(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseTime(end)
	if err != nil {
		return Interval{}, err
	}
	iv := Interval{Start: s, End: e}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidInterval, start, end)
	}
	return iv, nil
}

func (iv Interval) Valid() bool { return iv.Start.Before(iv.End) }

// Overlaps reports whether the two ranges share any instant. Ranges that only
// touch (one ends where the other starts) do not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && o.Start.Before(iv.End)
}

func (iv Interval) Equal(o Interval) bool {
	return iv.Start.Equal(o.Start) && iv.End.Equal(o.End)
}

func (iv Interval) String() string {
	return "[" + iv.Start.Format(TimeLayout) + ", " + iv.End.Format(TimeLayout) + ")"
}

// Strings returns the persisted pair form.
func (iv Interval) Strings() [2]string {
	return [2]string{iv.Start.Format(TimeLayout), iv.End.Format(TimeLayout)}
}

func IntervalFromStrings(pair []string) (Interval, error) {
	if len(pair) != 2 {
		return Interval{}, fmt.Errorf("%w: want [start, end], got %d values", ErrInvalidInterval, len(pair))
	}
	return ParseInterval(pair[0], pair[1])
}

func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(iv.Strings())
}

func (iv *Interval) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	v, err := IntervalFromStrings(pair)
	if err != nil {
		return err
	}
	*iv = v
	return nil
}

// Room is a bookable resource together with its committed intervals. Bookings
// is kept sorted by start and must not be modified in place once the room has
// been published to readers.
type Room struct {
	ID         string     `json:"room_id"`
	Capacity   int        `json:"capacity"`
	Facilities []string   `json:"facilities"`
	Bookings   []Interval `json:"bookings"`
}

// RoomInfo is the display surface of a room: everything but its bookings.
type RoomInfo struct {
	ID         string   `json:"room_id"`
	Capacity   int      `json:"capacity"`
	Facilities []string `json:"facilities"`
}

func (r Room) Info() RoomInfo {
	return RoomInfo{ID: r.ID, Capacity: r.Capacity, Facilities: append([]string(nil), r.Facilities...)}
}

// RoomStatus lists the bookings of one room that start after a reference time.
type RoomStatus struct {
	RoomID   string     `json:"room_id"`
	Bookings []Interval `json:"bookings"`
}

// Booking is one ledger entry. It never changes after creation.
type Booking struct {
	ID        string
	RoomID    string
	UserName  string
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
}

func (b Booking) Interval() Interval { return Interval{Start: b.Start, End: b.End} }

type bookingJSON struct {
	ID        string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	UserName  string `json:"user_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedAt string `json:"created_at"`
}

func (b Booking) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookingJSON{
		ID:        b.ID,
		RoomID:    b.RoomID,
		UserName:  b.UserName,
		StartTime: b.Start.Format(TimeLayout),
		EndTime:   b.End.Format(TimeLayout),
		CreatedAt: b.CreatedAt.Format(CreatedAtLayout),
	})
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var in bookingJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	iv, err := ParseInterval(in.StartTime, in.EndTime)
	if err != nil {
		return fmt.Errorf("booking %s: %w", in.ID, err)
	}
	created, err := ParseInstant(in.CreatedAt)
	if err != nil {
		return fmt.Errorf("booking %s: created_at: %w", in.ID, err)
	}
	*b = Booking{
		ID:        in.ID,
		RoomID:    in.RoomID,
		UserName:  in.UserName,
		Start:     iv.Start,
		End:       iv.End,
		CreatedAt: created,
	}
	return nil
}
