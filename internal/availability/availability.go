// Package availability answers whether rooms are free over a half-open
// interval. It only looks at the room snapshots it is given.
package availability

import "roombooking/internal/models"

// IsAvailable is true iff no committed interval of room overlaps iv.
func IsAvailable(room models.Room, iv models.Interval) bool {
	for _, b := range room.Bookings {
		if b.Overlaps(iv) {
			return false
		}
	}
	return true
}

// Conflicts returns the committed intervals of room that overlap iv.
func Conflicts(room models.Room, iv models.Interval) []models.Interval {
	var out []models.Interval
	for _, b := range room.Bookings {
		if b.Overlaps(iv) {
			out = append(out, b)
		}
	}
	return out
}

// AvailableRooms keeps the order of rooms.
func AvailableRooms(rooms []models.Room, iv models.Interval) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		if IsAvailable(r, iv) {
			out = append(out, r.ID)
		}
	}
	return out
}
