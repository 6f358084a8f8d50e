package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"roombooking/internal/models"
)

// Records are JSON values in a hash; a list next to it keeps insertion order.

type catalogRepoRedis struct {
	rdb    *redis.Client
	prefix string
}

func NewCatalogRepoRedis(rdb *redis.Client, prefix string) CatalogRepo {
	return &catalogRepoRedis{rdb: rdb, prefix: prefix}
}

func (s *catalogRepoRedis) roomsKey() string { return s.prefix + "catalog:rooms" }
func (s *catalogRepoRedis) orderKey() string { return s.prefix + "catalog:order" }

func (s *catalogRepoRedis) Load(ctx context.Context) ([]models.Room, bool, error) {
	ids, err := s.rdb.LRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, false, err
	}
	if len(ids) == 0 {
		return nil, false, nil
	}
	vals, err := s.rdb.HMGet(ctx, s.roomsKey(), ids...).Result()
	if err != nil {
		return nil, false, err
	}
	out := make([]models.Room, 0, len(ids))
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			return nil, false, fmt.Errorf("room %s listed but has no record", ids[i])
		}
		var r models.Room
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			return nil, false, fmt.Errorf("room %s: %w", ids[i], err)
		}
		out = append(out, r)
	}
	return out, true, nil
}

func (s *catalogRepoRedis) SaveRoom(ctx context.Context, room models.Room) error {
	val, err := json.Marshal(roomRecord(room))
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, s.roomsKey(), room.ID, val).Err()
}

func (s *catalogRepoRedis) SaveAll(ctx context.Context, rooms []models.Room) error {
	ids := make([]interface{}, 0, len(rooms))
	fields := make([]interface{}, 0, 2*len(rooms))
	for _, r := range rooms {
		val, err := json.Marshal(roomRecord(r))
		if err != nil {
			return err
		}
		ids = append(ids, r.ID)
		fields = append(fields, r.ID, val)
	}
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.roomsKey(), s.orderKey())
		if len(rooms) > 0 {
			p.RPush(ctx, s.orderKey(), ids...)
			p.HSet(ctx, s.roomsKey(), fields...)
		}
		return nil
	})
	return err
}

type ledgerRepoRedis struct {
	rdb    *redis.Client
	prefix string
}

func NewLedgerRepoRedis(rdb *redis.Client, prefix string) LedgerRepo {
	return &ledgerRepoRedis{rdb: rdb, prefix: prefix}
}

func (s *ledgerRepoRedis) bookingsKey() string { return s.prefix + "ledger:bookings" }
func (s *ledgerRepoRedis) orderKey() string    { return s.prefix + "ledger:order" }

func (s *ledgerRepoRedis) Append(ctx context.Context, b models.Booking) error {
	return s.AppendMany(ctx, []models.Booking{b})
}

func (s *ledgerRepoRedis) AppendMany(ctx context.Context, bs []models.Booking) error {
	if len(bs) == 0 {
		return nil
	}
	ids := make([]interface{}, 0, len(bs))
	fields := make([]interface{}, 0, 2*len(bs))
	for _, b := range bs {
		val, err := json.Marshal(b)
		if err != nil {
			return err
		}
		ids = append(ids, b.ID)
		fields = append(fields, b.ID, val)
	}
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, s.bookingsKey(), fields...)
		p.RPush(ctx, s.orderKey(), ids...)
		return nil
	})
	return err
}

func (s *ledgerRepoRedis) Has(ctx context.Context, id string) (bool, error) {
	return s.rdb.HExists(ctx, s.bookingsKey(), id).Result()
}

const redisBatch = 500

func (s *ledgerRepoRedis) LoadAll(ctx context.Context) ([]models.Booking, error) {
	ids, err := s.rdb.LRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]models.Booking, 0, len(ids))
	for lo := 0; lo < len(ids); lo += redisBatch {
		hi := min(lo+redisBatch, len(ids))
		vals, err := s.rdb.HMGet(ctx, s.bookingsKey(), ids[lo:hi]...).Result()
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			str, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("booking %s listed but has no record", ids[lo+i])
			}
			var b models.Booking
			if err := json.Unmarshal([]byte(str), &b); err != nil {
				return nil, err
			}
			out = append(out, b)
		}
	}
	return out, nil
}

// roomRecord makes sure empty lists persist as [] rather than null.
func roomRecord(r models.Room) models.Room {
	r.Facilities = nonNil(r.Facilities)
	if r.Bookings == nil {
		r.Bookings = []models.Interval{}
	}
	return r
}
