package mongodb

import (
	"context"
	"time"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure ChatRepository implements the interface
var _ repositories.ChatRepository = (*ChatRepository)(nil)

// ChatRepository handles MongoDB operations for help-chat messages
type ChatRepository struct {
	collection *mongo.Collection
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{
		collection: db.Collection("chat_messages"),
	}
}

// Create inserts a new chat message
func (r *ChatRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// FindByThread retrieves a user's thread, oldest first
func (r *ChatRepository) FindByThread(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.ChatMessage, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// FindThreads lists the thread owners with the most recent activity first
func (r *ChatRepository) FindThreads(ctx context.Context, page, limit int) ([]primitive.ObjectID, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$userId",
			"lastSeen": bson.M{"$first": "$createdAt"},
		}}},
		{{Key: "$sort", Value: bson.M{"lastSeen": -1}}},
		{{Key: "$skip", Value: int64((page - 1) * limit)}},
		{{Key: "$limit", Value: int64(limit)}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// MarkThreadRead marks the thread's messages from the given side as read
func (r *ChatRepository) MarkThreadRead(ctx context.Context, userID primitive.ObjectID, fromAdmin bool) error {
	filter := bson.M{"userId": userID, "fromAdmin": fromAdmin, "read": false}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	return err
}
