package profile

import (
	"context"
	"livin/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type (
	ProfileRepo struct {
		collection *mongo.Collection
	}
)

func NewProfileRepo(db *mongo.Database) *ProfileRepo {
	return &ProfileRepo{
		collection: db.Collection("profiles"),
	}
}

func (r *ProfileRepo) Create(ctx context.Context, profile *model.Profile) (primitive.ObjectID, error) {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id := res.InsertedID.(primitive.ObjectID)
	profile.ID = id
	return id, nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var profile model.Profile
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// ListExcludingUser returns every profile except the given user's own, for
// the swipe deck.
func (r *ProfileRepo) ListExcludingUser(ctx context.Context, userID string) ([]model.Profile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": bson.M{"$ne": userID}})
	if err != nil {
		return nil, err
	}

	profiles := []model.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Profile, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}

	profiles := []model.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepo) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
