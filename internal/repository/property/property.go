package property

import (
	"context"
	"livin/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	PropertyRepo struct {
		collection *mongo.Collection
	}
)

func NewPropertyRepo(db *mongo.Database) *PropertyRepo {
	return &PropertyRepo{
		collection: db.Collection("properties"),
	}
}

func (r *PropertyRepo) Create(ctx context.Context, property *model.Property) (primitive.ObjectID, error) {
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, property)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id := res.InsertedID.(primitive.ObjectID)
	property.ID = id
	return id, nil
}

// List returns all properties, newest first.
func (r *PropertyRepo) List(ctx context.Context) ([]model.Property, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	properties := []model.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Property, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	properties := []model.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var property model.Property
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &property, nil
}

// GetOwned returns the property only when the given user owns it.
func (r *PropertyRepo) GetOwned(ctx context.Context, id, ownerID string) (*model.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var property model.Property
	err = r.collection.FindOne(ctx, bson.M{"_id": oid, "ownerId": ownerID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &property, nil
}

func (r *PropertyRepo) Update(ctx context.Context, id string, property *model.Property) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	property.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, property)
	return err
}

// DeleteOwned removes the property only when the given user owns it.
func (r *PropertyRepo) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "ownerId": ownerID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
