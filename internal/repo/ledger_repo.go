package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roombooking/internal/models"
)

// LedgerRepo is the append-only durable record of bookings. LoadAll returns
// entries in insertion order. Has reads the durable record, so it can settle
// whether an Append that returned an error was stored anyway.
type LedgerRepo interface {
	Append(ctx context.Context, b models.Booking) error
	AppendMany(ctx context.Context, bs []models.Booking) error
	LoadAll(ctx context.Context) ([]models.Booking, error)
	Has(ctx context.Context, id string) (bool, error)
}

type ledgerRepoMongo struct{ d *mongo.Database }

func NewLedgerRepoMongo(d *mongo.Database) LedgerRepo { return &ledgerRepoMongo{d: d} }

// oid orders entries; ObjectIDs from one process increase monotonically.
type bookingDoc struct {
	ID        string             `bson:"_id"`
	OID       primitive.ObjectID `bson:"oid"`
	RoomID    string             `bson:"room_id"`
	UserName  string             `bson:"user_name"`
	StartTime string             `bson:"start_time"`
	EndTime   string             `bson:"end_time"`
	CreatedAt string             `bson:"created_at"`
}

func toBookingDoc(b models.Booking) bookingDoc {
	return bookingDoc{
		ID:        b.ID,
		OID:       primitive.NewObjectID(),
		RoomID:    b.RoomID,
		UserName:  b.UserName,
		StartTime: b.Start.Format(models.TimeLayout),
		EndTime:   b.End.Format(models.TimeLayout),
		CreatedAt: b.CreatedAt.Format(models.CreatedAtLayout),
	}
}

func (d bookingDoc) booking() (models.Booking, error) {
	iv, err := models.ParseInterval(d.StartTime, d.EndTime)
	if err != nil {
		return models.Booking{}, err
	}
	created, err := models.ParseInstant(d.CreatedAt)
	if err != nil {
		return models.Booking{}, err
	}
	return models.Booking{
		ID: d.ID, RoomID: d.RoomID, UserName: d.UserName,
		Start: iv.Start, End: iv.End, CreatedAt: created,
	}, nil
}

func (r *ledgerRepoMongo) Append(ctx context.Context, b models.Booking) error {
	_, err := r.d.Collection("bookings").InsertOne(ctx, toBookingDoc(b))
	return err
}

func (r *ledgerRepoMongo) AppendMany(ctx context.Context, bs []models.Booking) error {
	if len(bs) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(bs))
	for _, b := range bs {
		docs = append(docs, toBookingDoc(b))
	}
	_, err := r.d.Collection("bookings").InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

func (r *ledgerRepoMongo) Has(ctx context.Context, id string) (bool, error) {
	n, err := r.d.Collection("bookings").CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ledgerRepoMongo) LoadAll(ctx context.Context) ([]models.Booking, error) {
	cur, err := r.d.Collection("bookings").Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "oid", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Booking
	for cur.Next(ctx) {
		var doc bookingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		b, err := doc.booking()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, cur.Err()
}
