package bill

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
	BillRepo struct {
		collection *mongo.Collection
	}
)

func NewBillRepo(db *mongo.Database) *BillRepo {
	return &BillRepo{
		collection: db.Collection("bills"),
	}
}

func (r *BillRepo) Create(ctx context.Context, bill *model.Bill) (primitive.ObjectID, error) {
	now := time.Now()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, bill)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id := res.InsertedID.(primitive.ObjectID)
	bill.ID = id
	return id, nil
}

// ListForUser returns bills the user paid or participates in, newest first.
func (r *BillRepo) ListForUser(ctx context.Context, userID string) ([]model.Bill, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"paidBy": userID},
			bson.M{"splitBetween": bson.M{"$in": bson.A{userID}}},
		},
	}
	return r.list(ctx, filter)
}

func (r *BillRepo) ListPaidBy(ctx context.Context, userID string) ([]model.Bill, error) {
	return r.list(ctx, bson.M{"paidBy": userID})
}

func (r *BillRepo) list(ctx context.Context, filter bson.M) ([]model.Bill, error) {
	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}

	bills := []model.Bill{}
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *BillRepo) GetByID(ctx context.Context, id string) (*model.Bill, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var bill model.Bill
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&bill)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &bill, nil
}

func (r *BillRepo) Update(ctx context.Context, id string, bill *model.Bill) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	bill.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, bill)
	return err
}

func (r *BillRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *BillRepo) SetStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	return err
}
