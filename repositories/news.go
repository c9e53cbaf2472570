package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nyayasetu/models"
)

type NewsRepository struct {
	col *mongo.Collection
}

func NewNewsRepository(db *mongo.Database) *NewsRepository {
	return &NewsRepository{col: db.Collection("news")}
}

// List returns articles with the highlight card first, then newest first.
func (r *NewsRepository) List(ctx context.Context) ([]models.News, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "is_highlight", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.News
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NewsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.News, error) {
	var n models.News
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NewsRepository) Insert(ctx context.Context, n *models.News) (*models.News, error) {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return nil, err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return n, nil
}

func (r *NewsRepository) Update(ctx context.Context, n *models.News) (*models.News, error) {
	update := bson.M{"$set": bson.M{
		"title":        n.Title,
		"date":         n.Date,
		"summary":      n.Summary,
		"image":        n.Image,
		"is_highlight": n.IsHighlight,
		"updated_at":   time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var saved models.News
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": n.ID}, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *NewsRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
