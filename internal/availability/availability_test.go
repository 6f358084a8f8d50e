package availability

import (
	"reflect"
	"testing"

	"roombooking/internal/models"
)

func iv(t *testing.T, s, e string) models.Interval {
	t.Helper()
	v, err := models.ParseInterval(s, e)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestIsAvailableAgainstR101(t *testing.T) {
	r101 := models.Room{ID: "R101", Capacity: 8, Bookings: []models.Interval{
		iv(t, "2023-10-01 09:00", "2023-10-01 10:30"),
		iv(t, "2023-10-01 14:00", "2023-10-01 15:00"),
	}}

	if IsAvailable(r101, iv(t, "2023-10-01 09:00", "2023-10-01 10:00")) {
		t.Error("09:00-10:00 overlaps the seeded morning booking")
	}
	if !IsAvailable(r101, iv(t, "2023-10-01 10:30", "2023-10-01 11:00")) {
		t.Error("10:30-11:00 only touches the morning booking")
	}
	if !IsAvailable(r101, iv(t, "2023-10-01 13:00", "2023-10-01 14:00")) {
		t.Error("13:00-14:00 only touches the afternoon booking")
	}
	if IsAvailable(r101, iv(t, "2023-10-01 08:00", "2023-10-01 18:00")) {
		t.Error("a window covering both bookings must conflict")
	}
	got := Conflicts(r101, iv(t, "2023-10-01 10:00", "2023-10-01 14:30"))
	if len(got) != 2 {
		t.Fatalf("expected both bookings to conflict, got %v", got)
	}
}

func TestEmptyRoomIsAlwaysAvailable(t *testing.T) {
	if !IsAvailable(models.Room{ID: "R105"}, iv(t, "2023-10-01 00:00", "2023-10-02 00:00")) {
		t.Fatal("room without bookings must be available")
	}
}

func TestAvailableRoomsKeepsCatalogOrder(t *testing.T) {
	busy := iv(t, "2023-10-01 09:00", "2023-10-01 17:00")
	rooms := []models.Room{
		{ID: "R110"},
		{ID: "R107", Bookings: []models.Interval{busy}},
		{ID: "R101"},
		{ID: "R105"},
	}
	got := AvailableRooms(rooms, iv(t, "2023-10-01 12:00", "2023-10-01 13:00"))
	want := []string{"R110", "R101", "R105"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	got = AvailableRooms(rooms, iv(t, "2023-10-01 17:00", "2023-10-01 18:00"))
	if len(got) != 4 {
		t.Fatalf("R107 is free from 17:00, got %v", got)
	}
}
