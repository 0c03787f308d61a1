package service

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
	ServiceRepo struct {
		collection *mongo.Collection
	}
)

func NewServiceRepo(db *mongo.Database) *ServiceRepo {
	return &ServiceRepo{
		collection: db.Collection("services"),
	}
}

func (r *ServiceRepo) Create(ctx context.Context, service *model.Service) (primitive.ObjectID, error) {
	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, service)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id := res.InsertedID.(primitive.ObjectID)
	service.ID = id
	return id, nil
}

// List returns all services, newest first.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	services := []model.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceRepo) ListByVendor(ctx context.Context, vendorID string) ([]model.Service, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"vendorId": vendorID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	services := []model.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*model.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var service model.Service
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&service)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &service, nil
}

func (r *ServiceRepo) GetOwned(ctx context.Context, id, vendorID string) (*model.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var service model.Service
	err = r.collection.FindOne(ctx, bson.M{"_id": oid, "vendorId": vendorID}).Decode(&service)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &service, nil
}

func (r *ServiceRepo) Update(ctx context.Context, id string, service *model.Service) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	service.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, service)
	return err
}

func (r *ServiceRepo) DeleteOwned(ctx context.Context, id, vendorID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "vendorId": vendorID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
