package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/edubridge/lms-backend/internal/models"
	"github.com/edubridge/lms-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure PlatformSettingsRepository implements the interface
var _ repositories.PlatformSettingsRepository = (*PlatformSettingsRepository)(nil)

// PlatformSettingsRepository handles MongoDB operations for the settings
// singleton. All reads and writes address the single document in the
// collection via an empty filter, the same way every caller sees it.
type PlatformSettingsRepository struct {
	collection *mongo.Collection
}

// NewPlatformSettingsRepository creates a new PlatformSettingsRepository
func NewPlatformSettingsRepository(db *mongo.Database) *PlatformSettingsRepository {
	return &PlatformSettingsRepository{
		collection: db.Collection("platform_settings"),
	}
}

// Get retrieves the settings document
func (r *PlatformSettingsRepository) Get(ctx context.Context) (*models.PlatformSettings, error) {
	var settings models.PlatformSettings
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Bootstrap inserts the default settings document if the collection is empty
func (r *PlatformSettingsRepository) Bootstrap(ctx context.Context) (*models.PlatformSettings, error) {
	settings, err := r.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	defaults := models.DefaultPlatformSettings()
	if _, err := r.collection.InsertOne(ctx, defaults); err != nil {
		return nil, err
	}
	return r.Get(ctx)
}

// ApplyPatch applies the field set as a single $set update and returns the
// post-update document.
func (r *PlatformSettingsRepository) ApplyPatch(ctx context.Context, patch map[string]interface{}, updatedBy string) (*models.PlatformSettings, error) {
	set := bson.M{
		"updatedAt": time.Now(),
		"updatedBy": updatedBy,
	}
	for field, value := range patch {
		set[field] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var settings models.PlatformSettings
	err := r.collection.FindOneAndUpdate(ctx, bson.M{}, bson.M{"$set": set}, opts).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// ApplyPatchIf applies the patch only while the expected fields still hold
// their observed values. When another writer got there first the update
// matches nothing; the caller gets a fresh read and applied=false.
func (r *PlatformSettingsRepository) ApplyPatchIf(ctx context.Context, expected map[string]interface{}, patch map[string]interface{}, updatedBy string) (*models.PlatformSettings, bool, error) {
	filter := bson.M{}
	for field, value := range expected {
		filter[field] = value
	}
	set := bson.M{
		"updatedAt": time.Now(),
		"updatedBy": updatedBy,
	}
	for field, value := range patch {
		set[field] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var settings models.PlatformSettings
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		current, gerr := r.Get(ctx)
		if gerr != nil {
			return nil, false, gerr
		}
		return current, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &settings, true, nil
}
