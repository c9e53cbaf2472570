package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nyayasetu/models"
)

type DailyLawRepository struct {
	col *mongo.Collection
}

func NewDailyLawRepository(db *mongo.Database) *DailyLawRepository {
	return &DailyLawRepository{col: db.Collection("daily_laws")}
}

// GetLatest returns the most recently generated record, or nil when the
// collection is empty.
func (r *DailyLawRepository) GetLatest(ctx context.Context) (*models.DailyLaw, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
	var d models.DailyLaw
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpsertByFetchDate writes the record keyed by its fetch_date and returns
// the stored document. Calling it again for the same day overwrites the
// previous record (last writer wins).
func (r *DailyLawRepository) UpsertByFetchDate(ctx context.Context, d *models.DailyLaw) (*models.DailyLaw, error) {
	if d.Date.IsZero() {
		d.Date = time.Now()
	}

	filter := bson.M{"fetch_date": d.FetchDate}
	update := bson.M{
		"$set": bson.M{
			"fetch_date":     d.FetchDate,
			"title":          d.Title,
			"highlights":     d.Highlights,
			"summary":        d.Summary,
			"why_it_matters": d.WhyItMatters,
			"source_link":    d.SourceLink,
			"image_url":      d.ImageURL,
			"model_name":     d.ModelName,
			"date":           d.Date,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.DailyLaw
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListRecent returns up to limit records, newest first.
func (r *DailyLawRepository) ListRecent(ctx context.Context, limit int) ([]models.DailyLaw, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.DailyLaw
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID returns a record by its ObjectID.
func (r *DailyLawRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DailyLaw, error) {
	var d models.DailyLaw
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// RecentSourceLinks returns the source links of the n most recent records.
// Used as the exclusion set for the next generation run.
func (r *DailyLawRepository) RecentSourceLinks(ctx context.Context, n int) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(n)).
		SetProjection(bson.M{"source_link": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.DailyLaw
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	links := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.SourceLink != "" {
			links = append(links, d.SourceLink)
		}
	}
	return links, nil
}

// FindOlderThan returns records created before the cutoff, so callers can
// release resources the records own before deleting them.
func (r *DailyLawRepository) FindOlderThan(ctx context.Context, cutoff time.Time) ([]models.DailyLaw, error) {
	cur, err := r.col.Find(ctx, bson.M{"date": bson.M{"$lt": cutoff}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.DailyLaw
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteOlderThan removes all records created before the cutoff.
func (r *DailyLawRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
