package message

import (
	"context"
	"livin/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	MessageRepo struct {
		collection *mongo.Collection
	}

	// Page bounds a history query. Limit <= 0 means no bound. Before, when
	// set, restricts the page to messages strictly older than that message
	// ((timestamp, _id) is the sort key, so equal timestamps page correctly).
	Page struct {
		Limit  int64
		Before primitive.ObjectID
	}
)

func NewMessageRepo(db *mongo.Database) *MessageRepo {
	return &MessageRepo{
		collection: db.Collection("messages"),
	}
}

func (r *MessageRepo) Insert(ctx context.Context, msg *model.Message) error {
	res, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return err
	}

	msg.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// pairFilter matches every message exchanged between a and b, in either
// direction.
func pairFilter(a, b string) bson.M {
	return bson.M{
		"$or": bson.A{
			bson.M{"sender": a, "receiver": b},
			bson.M{"sender": b, "receiver": a},
		},
	}
}

// ListBetween returns the conversation between a and b ordered ascending by
// (timestamp, _id). With a bounded page it fetches the newest matching
// messages first and reverses them, so the caller always sees ascending
// order regardless of pagination.
func (r *MessageRepo) ListBetween(ctx context.Context, a, b string, page Page) ([]model.Message, error) {
	filter := pairFilter(a, b)

	if page.Limit <= 0 && page.Before.IsZero() {
		cursor, err := r.collection.Find(ctx, filter,
			options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}))
		if err != nil {
			return nil, err
		}
		return decodeAll(ctx, cursor)
	}

	if !page.Before.IsZero() {
		var anchor model.Message
		err := r.collection.FindOne(ctx, bson.M{"_id": page.Before}).Decode(&anchor)
		if err == mongo.ErrNoDocuments {
			return []model.Message{}, nil
		}
		if err != nil {
			return nil, err
		}

		filter = bson.M{
			"$and": bson.A{
				pairFilter(a, b),
				bson.M{"$or": bson.A{
					bson.M{"timestamp": bson.M{"$lt": anchor.Timestamp}},
					bson.M{"timestamp": anchor.Timestamp, "_id": bson.M{"$lt": anchor.ID}},
				}},
			},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if page.Limit > 0 {
		opts = opts.SetLimit(page.Limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	messages, err := decodeAll(ctx, cursor)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]model.Message, error) {
	messages := []model.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
