package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyLaw is the generated legal case study of the day.
// Collection: daily_laws
//
// FetchDate is the canonical YYYY-MM-DD key; the unique index on it plus
// upsert semantics guarantee at most one record per calendar day. Fields
// are never edited after generation; records leave the collection only
// through the retention sweep.
type DailyLaw struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FetchDate    string             `bson:"fetch_date" json:"fetch_date"`
	Title        string             `bson:"title" json:"title"`
	Highlights   string             `bson:"highlights" json:"highlights"`
	Summary      string             `bson:"summary" json:"summary"`
	WhyItMatters string             `bson:"why_it_matters" json:"why_it_matters"`
	SourceLink   string             `bson:"source_link" json:"source_link"`

	// ImageURL is either a path under the local uploads dir (owned by this
	// record, deleted with it) or a remote fallback URL when the local
	// save failed.
	ImageURL string `bson:"image_url" json:"image_url"`

	ModelName string    `bson:"model_name" json:"model_name"`
	Date      time.Time `bson:"date" json:"date"`
}

// OwnsLocalImage reports whether ImageURL points at a file this record owns.
func (d *DailyLaw) OwnsLocalImage() bool {
	return len(d.ImageURL) > 0 && d.ImageURL[0] == '/'
}
