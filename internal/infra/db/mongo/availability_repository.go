package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "staycal/internal/domain/availability"
)

type AvailabilityRepository struct {
	col *mongo.Collection
}

func NewAvailabilityRepository(ctx context.Context, db *mongo.Database) (*AvailabilityRepository, error) {
	col := db.Collection("availability_records")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "property_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, err
	}
	return &AvailabilityRepository{col: col}, nil
}

func (r *AvailabilityRepository) Records(ctx context.Context, id domainavailability.PropertyID) ([]domainavailability.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"property_id": string(id)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domainavailability.Record, 0)
	for cur.Next(ctx) {
		var doc recordDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toRecord())
	}
	return out, cur.Err()
}

func (r *AvailabilityRepository) Put(ctx context.Context, id domainavailability.PropertyID, records []domainavailability.Record, replace bool, at time.Time) error {
	if replace {
		dates := make([]string, 0, len(records))
		for _, rec := range records {
			dates = append(dates, rec.Date)
		}
		filter := bson.M{"property_id": string(id), "date": bson.M{"$nin": dates}}
		if _, err := r.col.DeleteMany(ctx, filter); err != nil {
			return err
		}
	}
	if len(records) == 0 {
		return nil
	}
	now := at.UTC()
	models := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		doc := newRecordDocument(id, rec, now)
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetUpdate(bson.M{"$set": doc}).
			SetUpsert(true))
	}
	_, err := r.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

type recordDocument struct {
	ID          string    `bson:"_id"`
	PropertyID  string    `bson:"property_id"`
	Date        string    `bson:"date"`
	IsAvailable bool      `bson:"is_available"`
	Reason      string    `bson:"reason,omitempty"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newRecordDocument(id domainavailability.PropertyID, rec domainavailability.Record, now time.Time) recordDocument {
	return recordDocument{
		ID:          string(id) + "|" + rec.Date,
		PropertyID:  string(id),
		Date:        rec.Date,
		IsAvailable: rec.IsAvailable,
		Reason:      rec.Reason,
		UpdatedAt:   now,
	}
}

func (d recordDocument) toRecord() domainavailability.Record {
	return domainavailability.Record{Date: d.Date, IsAvailable: d.IsAvailable, Reason: d.Reason}
}

var _ domainavailability.Repository = (*AvailabilityRepository)(nil)
