package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// News is an editor-curated news article.
// Collection: news
type News struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
	Title       string             `bson:"title" json:"title"`
	Date        string             `bson:"date" json:"date"`
	Summary     string             `bson:"summary" json:"summary"`
	Image       string             `bson:"image,omitempty" json:"image"`
	IsHighlight bool               `bson:"is_highlight" json:"is_highlight"`
}
