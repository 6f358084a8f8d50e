package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"roombooking/internal/availability"
	"roombooking/internal/models"
)

// SearchService is the read-only surface over the store.
type SearchService interface {
	RoomInfo(ctx context.Context, roomID string) (models.RoomInfo, error)
	ListRooms(ctx context.Context) ([]models.RoomInfo, error)
	Rooms(ctx context.Context) ([]models.Room, error)
	RoomStatus(ctx context.Context, asOf string) ([]models.RoomStatus, error)
	AvailableRooms(ctx context.Context, start, end string) ([]string, error)
	CheckCompletion(ctx context.Context, preds ...models.Predicate) (bool, error)
	SearchBookings(ctx context.Context, preds ...models.Predicate) ([]models.Booking, error)
	Bookings(ctx context.Context) (map[string]models.Booking, error)
}

type searchService struct {
	store  *Store
	tracer trace.Tracer
}

func NewSearchService(st *Store) SearchService {
	return &searchService{store: st, tracer: otel.Tracer(tracerName)}
}

func (s *searchService) RoomInfo(_ context.Context, roomID string) (models.RoomInfo, error) {
	cat, _, err := s.store.views()
	if err != nil {
		return models.RoomInfo{}, err
	}
	r, ok := cat.get(roomID)
	if !ok {
		return models.RoomInfo{}, ErrRoomNotFound
	}
	return r.Info(), nil
}

func (s *searchService) ListRooms(ctx context.Context) ([]models.RoomInfo, error) {
	rooms, err := s.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.RoomInfo, len(rooms))
	for i, r := range rooms {
		out[i] = r.Info()
	}
	return out, nil
}

func (s *searchService) Rooms(_ context.Context) ([]models.Room, error) {
	cat, _, err := s.store.views()
	if err != nil {
		return nil, err
	}
	return cat.list(), nil
}

// RoomStatus keeps, per room, the intervals starting strictly after asOf.
func (s *searchService) RoomStatus(_ context.Context, asOf string) ([]models.RoomStatus, error) {
	at, err := models.ParseInstant(asOf)
	if err != nil {
		return nil, err
	}
	cat, _, err := s.store.views()
	if err != nil {
		return nil, err
	}
	rooms := cat.list()
	out := make([]models.RoomStatus, 0, len(rooms))
	for _, r := range rooms {
		st := models.RoomStatus{RoomID: r.ID, Bookings: []models.Interval{}}
		for _, iv := range r.Bookings {
			if iv.Start.After(at) {
				st.Bookings = append(st.Bookings, iv)
			}
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *searchService) AvailableRooms(ctx context.Context, start, end string) ([]string, error) {
	_, span := s.tracer.Start(ctx, "AvailableRooms", trace.WithAttributes(
		attribute.String("interval.start", start), attribute.String("interval.end", end)))
	defer span.End()

	iv, err := models.ParseInterval(start, end)
	if err != nil {
		return nil, err
	}
	cat, _, err := s.store.views()
	if err != nil {
		return nil, err
	}
	return availability.AvailableRooms(cat.list(), iv), nil
}

func (s *searchService) CheckCompletion(ctx context.Context, preds ...models.Predicate) (bool, error) {
	_, span := s.tracer.Start(ctx, "CheckCompletion", trace.WithAttributes(attribute.Int("predicates", len(preds))))
	defer span.End()

	_, led, err := s.store.views()
	if err != nil {
		return false, err
	}
	return led.find(preds), nil
}

func (s *searchService) SearchBookings(_ context.Context, preds ...models.Predicate) ([]models.Booking, error) {
	_, led, err := s.store.views()
	if err != nil {
		return nil, err
	}
	return led.search(preds), nil
}

func (s *searchService) Bookings(_ context.Context) (map[string]models.Booking, error) {
	_, led, err := s.store.views()
	if err != nil {
		return nil, err
	}
	return led.all(), nil
}
