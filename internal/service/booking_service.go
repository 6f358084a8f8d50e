package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"roombooking/internal/availability"
	"roombooking/internal/events"
	"roombooking/internal/lock"
	"roombooking/internal/models"
)

const tracerName = "roombooking/internal/service"

// storageTimeout bounds the durable writes of one booking.
const storageTimeout = 10 * time.Second

type BookingService interface {
	// BookRoom reserves [start, end) in the room and returns the new booking id.
	BookRoom(ctx context.Context, roomID, start, end, userName string) (string, error)
}

type bookingService struct {
	store  *Store
	locks  lock.Locker
	pub    events.Publisher
	log    *zap.Logger
	tracer trace.Tracer
}

func NewBookingService(st *Store, locks lock.Locker, pub events.Publisher, log *zap.Logger) BookingService {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &bookingService{store: st, locks: locks, pub: pub, log: log, tracer: otel.Tracer(tracerName)}
}

func newBookingID() string { return uuid.NewString() }

func (s *bookingService) BookRoom(ctx context.Context, roomID, start, end, userName string) (id string, err error) {
	ctx, span := s.tracer.Start(ctx, "BookRoom", trace.WithAttributes(attribute.String("room.id", roomID)))
	defer func() {
		if err != nil && !errors.Is(err, ErrConflict) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	iv, err := models.ParseInterval(start, end)
	if err != nil {
		return "", err
	}
	cat, led, err := s.store.views()
	if err != nil {
		return "", err
	}
	if _, ok := cat.get(roomID); !ok {
		return "", ErrRoomNotFound
	}

	b, err := s.commit(ctx, cat, led, roomID, iv, userName)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("booking.id", b.ID))

	if err := s.pub.PublishJSON(ctx, events.KeyBookingCreated, events.NewBookingCreated(b)); err != nil {
		s.log.Warn("publish booking.created", zap.String("booking_id", b.ID), zap.Error(err))
	}
	return b.ID, nil
}

// commit is the critical section: check, ledger write, catalog insert, ledger
// publish, catalog write, all under the room lock.
func (s *bookingService) commit(ctx context.Context, cat *catalog, led *ledger, roomID string, iv models.Interval, userName string) (models.Booking, error) {
	unlock, err := s.locks.Lock(ctx, roomID)
	if err != nil {
		s.log.Info("room lock not acquired", zap.String("room_id", roomID), zap.Error(err))
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBusy, err)
	}
	defer unlock()

	room, _ := cat.get(roomID)
	if !availability.IsAvailable(room, iv) {
		s.log.Debug("booking conflict",
			zap.String("room_id", roomID),
			zap.Stringer("requested", iv),
			zap.Int("conflicts", len(availability.Conflicts(room, iv))))
		return models.Booking{}, ErrConflict
	}

	// Once the write is issued its outcome must be known, so the caller's
	// cancellation does not reach the storage calls.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storageTimeout)
	defer cancel()

	b, err := led.persist(wctx, models.Booking{
		ID:        newBookingID(),
		RoomID:    roomID,
		UserName:  userName,
		Start:     iv.Start,
		End:       iv.End,
		CreatedAt: s.store.clock(),
	})
	if errors.Is(err, errOutcomeUnknown) {
		// The entry may be durable. Keep the slot taken in memory; the next
		// Initialize settles it from the ledger.
		cat.insert(roomID, iv)
		s.log.Error("ledger append outcome unknown, slot held until reload",
			zap.String("room_id", roomID), zap.Stringer("interval", iv), zap.Error(err))
		return models.Booking{}, err
	}
	if err != nil {
		s.log.Error("ledger append failed", zap.String("room_id", roomID), zap.Error(err))
		return models.Booking{}, err
	}

	// Readers may see the interval before its ledger entry, never the reverse.
	updated := cat.insert(roomID, iv)
	led.publish(b)

	// The ledger entry is durable, so the booking stands even if this write is
	// lost; the next Initialize rebuilds the room from the ledger.
	if err := s.store.rooms.SaveRoom(wctx, updated); err != nil {
		s.log.Error("catalog write failed, ledger entry kept",
			zap.String("room_id", roomID), zap.String("booking_id", b.ID), zap.Error(err))
	}

	s.log.Info("room booked",
		zap.String("booking_id", b.ID),
		zap.String("room_id", roomID),
		zap.String("user_name", userName),
		zap.Stringer("interval", iv))
	return b, nil
}
