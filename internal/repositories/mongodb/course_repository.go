package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure CourseRepository implements the interface
var _ repositories.CourseRepository = (*CourseRepository)(nil)

// CourseRepository handles MongoDB operations for Course
type CourseRepository struct {
	collection *mongo.Collection
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{
		collection: db.Collection("courses"),
	}
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	course.ID = primitive.NewObjectID()
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()
	for i := range course.Modules {
		if course.Modules[i].ID.IsZero() {
			course.Modules[i].ID = primitive.NewObjectID()
		}
	}
	_, err := r.collection.InsertOne(ctx, course)
	return err
}

// FindByID finds a course by ID
func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindPublished retrieves published courses, optionally filtered by category
func (r *CourseRepository) FindPublished(ctx context.Context, category string, page, limit int) ([]*models.Course, error) {
	filter := bson.M{"published": true}
	if category != "" {
		filter["category"] = category
	}
	return r.find(ctx, filter, page, limit)
}

// FindAll retrieves all courses with pagination
func (r *CourseRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Course, error) {
	return r.find(ctx, bson.M{}, page, limit)
}

func (r *CourseRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.Course, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []*models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now()
	for i := range course.Modules {
		if course.Modules[i].ID.IsZero() {
			course.Modules[i].ID = primitive.NewObjectID()
		}
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": course.ID}, course)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a course
func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Count counts all courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
