package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roombooking/internal/models"
)

// CatalogRepo is the durable record of rooms and their committed intervals.
// Load reports ok=false when nothing has been persisted yet.
type CatalogRepo interface {
	Load(ctx context.Context) (rooms []models.Room, ok bool, err error)
	SaveRoom(ctx context.Context, room models.Room) error
	SaveAll(ctx context.Context, rooms []models.Room) error
}

type catalogRepoMongo struct{ d *mongo.Database }

func NewCatalogRepoMongo(d *mongo.Database) CatalogRepo { return &catalogRepoMongo{d: d} }

type roomDoc struct {
	ID         string     `bson:"_id"`
	Seq        int        `bson:"seq"`
	Capacity   int        `bson:"capacity"`
	Facilities []string   `bson:"facilities"`
	Bookings   [][]string `bson:"bookings"`
}

func toRoomDoc(r models.Room, seq int) roomDoc {
	return roomDoc{
		ID:         r.ID,
		Seq:        seq,
		Capacity:   r.Capacity,
		Facilities: nonNil(r.Facilities),
		Bookings:   intervalPairs(r.Bookings),
	}
}

func (r *catalogRepoMongo) Load(ctx context.Context) ([]models.Room, bool, error) {
	cur, err := r.d.Collection("rooms").Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, false, err
	}
	defer cur.Close(ctx)
	var out []models.Room
	for cur.Next(ctx) {
		var doc roomDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, false, err
		}
		ivs, err := parsePairs(doc.Bookings)
		if err != nil {
			return nil, false, fmt.Errorf("room %s: %w", doc.ID, err)
		}
		out = append(out, models.Room{ID: doc.ID, Capacity: doc.Capacity, Facilities: doc.Facilities, Bookings: ivs})
	}
	if err := cur.Err(); err != nil {
		return nil, false, err
	}
	return out, len(out) > 0, nil
}

func (r *catalogRepoMongo) SaveRoom(ctx context.Context, room models.Room) error {
	res, err := r.d.Collection("rooms").UpdateOne(ctx,
		bson.M{"_id": room.ID},
		bson.M{"$set": bson.M{
			"capacity":   room.Capacity,
			"facilities": nonNil(room.Facilities),
			"bookings":   intervalPairs(room.Bookings),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("room %s is not in the catalog", room.ID)
	}
	return nil
}

func (r *catalogRepoMongo) SaveAll(ctx context.Context, rooms []models.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(rooms))
	for i, room := range rooms {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": room.ID}).
			SetReplacement(toRoomDoc(room, i)).
			SetUpsert(true))
	}
	_, err := r.d.Collection("rooms").BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	return err
}

func intervalPairs(ivs []models.Interval) [][]string {
	out := make([][]string, 0, len(ivs))
	for _, iv := range ivs {
		p := iv.Strings()
		out = append(out, p[:])
	}
	return out
}

func parsePairs(pairs [][]string) ([]models.Interval, error) {
	out := make([]models.Interval, 0, len(pairs))
	for _, p := range pairs {
		iv, err := models.IntervalFromStrings(p)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
