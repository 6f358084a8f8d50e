// Package seed holds the demonstration catalog used when no persisted
// catalog exists yet.
package seed

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"roombooking/internal/models"
)

// UserName is recorded on the ledger entries created for seeded intervals.
const UserName = "seed"

type roomEntry struct {
	ID         string      `yaml:"room_id"`
	Capacity   int         `yaml:"capacity"`
	Facilities []string    `yaml:"facilities"`
	Bookings   [][2]string `yaml:"bookings"`
}

type file struct {
	Rooms []roomEntry `yaml:"rooms"`
}

var defaults = []roomEntry{
	{"R101", 8, []string{"Whiteboard", "Projector"}, [][2]string{{"2023-10-01 09:00", "2023-10-01 10:30"}, {"2023-10-01 14:00", "2023-10-01 15:00"}}},
	{"R102", 15, []string{"Whiteboard", "Video Conference", "Teleconference"}, [][2]string{{"2023-10-01 11:00", "2023-10-01 12:30"}}},
	{"R103", 25, []string{"Projector", "Video Conference", "Teleconference", "Whiteboard"}, [][2]string{{"2023-10-01 13:00", "2023-10-01 16:00"}}},
	{"R104", 100, []string{"Projector", "Video Conference", "Teleconference", "Whiteboard", "Sound System"}, [][2]string{{"2023-10-01 10:00", "2023-10-01 12:00"}, {"2023-10-01 15:30", "2023-10-01 17:00"}}},
	{"R105", 4, []string{"Whiteboard"}, nil},
	{"R106", 200, []string{"Projector"}, [][2]string{{"2023-10-01 09:30", "2023-10-01 11:30"}, {"2023-10-01 13:30", "2023-10-01 14:30"}}},
	{"R107", 20, []string{"Whiteboard", "Projector", "Video Conference"}, [][2]string{{"2023-10-01 09:00", "2023-10-01 17:00"}}},
	{"R108", 30, []string{"Whiteboard", "Projector", "Video Conference", "Teleconference"}, nil},
	{"R109", 6, []string{"Whiteboard"}, [][2]string{{"2023-10-01 10:00", "2023-10-01 11:00"}, {"2023-10-01 14:00", "2023-10-01 16:00"}}},
	{"R110", 12, []string{"Projector", "Whiteboard"}, [][2]string{{"2023-10-01 09:00", "2023-10-01 10:00"}, {"2023-10-01 11:00", "2023-10-01 12:00"}}},
}

// Default returns the ten demonstration rooms.
func Default() []models.Room {
	rooms, err := build(defaults)
	if err != nil {
		panic(err)
	}
	return rooms
}

// Load reads a YAML seed file of the form
//
//	rooms:
//	  - room_id: R101
//	    capacity: 8
//	    facilities: [Whiteboard]
//	    bookings: [["2023-10-01 09:00", "2023-10-01 10:30"]]
func Load(path string) ([]models.Room, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rooms, err := build(f.Rooms)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rooms, nil
}

func build(entries []roomEntry) ([]models.Room, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("seed has no rooms")
	}
	seen := make(map[string]bool, len(entries))
	out := make([]models.Room, 0, len(entries))
	for _, s := range entries {
		if s.ID == "" || seen[s.ID] {
			return nil, fmt.Errorf("room id %q is empty or repeated", s.ID)
		}
		if s.Capacity <= 0 {
			return nil, fmt.Errorf("room %s: capacity must be positive", s.ID)
		}
		seen[s.ID] = true
		room := models.Room{ID: s.ID, Capacity: s.Capacity, Facilities: append([]string{}, s.Facilities...), Bookings: []models.Interval{}}
		for _, p := range s.Bookings {
			iv, err := models.ParseInterval(p[0], p[1])
			if err != nil {
				return nil, fmt.Errorf("room %s: %w", s.ID, err)
			}
			for _, b := range room.Bookings {
				if b.Overlaps(iv) {
					return nil, fmt.Errorf("room %s: %s overlaps %s", s.ID, iv, b)
				}
			}
			room.Bookings = append(room.Bookings, iv)
		}
		sort.Slice(room.Bookings, func(i, j int) bool { return room.Bookings[i].Start.Before(room.Bookings[j].Start) })
		out = append(out, room)
	}
	return out, nil
}
