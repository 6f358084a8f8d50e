package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"roombooking/internal/models"
)

func TestBookingCreatedPayload(t *testing.T) {
	iv, err := models.ParseInterval("2023-10-01 10:30", "2023-10-01 11:00")
	if err != nil {
		t.Fatal(err)
	}
	b := models.Booking{
		ID: "b-1", RoomID: "R101", UserName: "alice",
		Start: iv.Start, End: iv.End,
		CreatedAt: time.Date(2023, 10, 1, 9, 59, 3, 0, time.UTC),
	}
	raw, err := json.Marshal(NewBookingCreated(b))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Event   string            `json:"event"`
		Version int               `json:"version"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if got.Event != KeyBookingCreated || got.Version != 1 {
		t.Fatalf("envelope = %s", raw)
	}
	if got.Data["booking_id"] != "b-1" || got.Data["start_time"] != "2023-10-01 10:30" || got.Data["created_at"] != "2023-10-01 09:59:03" {
		t.Fatalf("data = %v", got.Data)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.PublishJSON(context.Background(), KeyBookingCreated, struct{}{}); err != nil {
		t.Fatal(err)
	}
}
