package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseModule is a single unit of content embedded in a course, ordered by
// Position.
type CourseModule struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	ContentURL  string             `bson:"contentUrl,omitempty" json:"contentUrl,omitempty"`
	Position    int                `bson:"position" json:"position"`
	PremiumOnly bool               `bson:"premiumOnly" json:"premiumOnly"`
}

// Course represents a published course with its embedded modules.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Published   bool               `bson:"published" json:"published"`
	PremiumOnly bool               `bson:"premiumOnly" json:"premiumOnly"`
	Modules     []CourseModule     `bson:"modules" json:"modules"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
