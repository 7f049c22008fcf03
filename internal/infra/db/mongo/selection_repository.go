package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "staycal/internal/domain/availability"
	domainselection "staycal/internal/domain/selection"
	"staycal/internal/domain/shared/daterange"
)

const sessionTTL = 30 * 24 * time.Hour

type SelectionRepository struct {
	col *mongo.Collection
}

func NewSelectionRepository(ctx context.Context, db *mongo.Database) (*SelectionRepository, error) {
	col := db.Collection("selection_sessions")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(sessionTTL.Seconds())),
	}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, err
	}
	return &SelectionRepository{col: col}, nil
}

func (r *SelectionRepository) ByID(ctx context.Context, id string) (*domainselection.Session, error) {
	var doc sessionDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainselection.ErrSessionNotFound
		}
		return nil, err
	}
	return doc.toSession(), nil
}

func (r *SelectionRepository) Save(ctx context.Context, session *domainselection.Session) error {
	doc := sessionDocument{
		ID:         session.ID,
		PropertyID: string(session.PropertyID),
		CheckIn:    session.State.CheckIn.String(),
		CheckOut:   session.State.CheckOut.String(),
		UpdatedAt:  session.UpdatedAt.UTC(),
	}
	_, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}

type sessionDocument struct {
	ID         string    `bson:"_id"`
	PropertyID string    `bson:"property_id"`
	CheckIn    string    `bson:"check_in"`
	CheckOut   string    `bson:"check_out"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

// toSession tolerates corrupted dates by dropping them; the selector revalidates on resume.
func (d sessionDocument) toSession() *domainselection.Session {
	var state domainselection.State
	if in, err := daterange.ParseDate(d.CheckIn); err == nil {
		state.CheckIn = in
		if out, err := daterange.ParseDate(d.CheckOut); err == nil {
			state.CheckOut = out
		}
	}
	return &domainselection.Session{
		ID:         d.ID,
		PropertyID: domainavailability.PropertyID(d.PropertyID),
		State:      state,
		UpdatedAt:  d.UpdatedAt,
	}
}

var _ domainselection.Repository = (*SelectionRepository)(nil)
