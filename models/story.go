package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story is a community-submitted experience. Only the AI-redacted body is
// served publicly; the original body is kept for legal reference and never
// leaves the admin surface.
// Collection: stories
type Story struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	Title        string             `bson:"title" json:"title"`
	RedactedBody string             `bson:"redacted_body" json:"redacted_body"`
	OriginalBody string             `bson:"original_body" json:"-"`
	Insight      string             `bson:"insight" json:"insight"`
	Category     string             `bson:"category" json:"category"`
	Location     string             `bson:"location" json:"location"`
	IsAnonymous  bool               `bson:"is_anonymous" json:"is_anonymous"`
	ConsentGiven bool               `bson:"consent_given" json:"consent_given"`
	Supports     int64              `bson:"supports" json:"supports"`
}
