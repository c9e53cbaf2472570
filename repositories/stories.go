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

type StoryRepository struct {
	col *mongo.Collection
}

func NewStoryRepository(db *mongo.Database) *StoryRepository {
	return &StoryRepository{col: db.Collection("stories")}
}

func (r *StoryRepository) Insert(ctx context.Context, s *models.Story) (*models.Story, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return nil, err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return s, nil
}

// List returns all stories, newest first. The original body is excluded
// at the projection level so it never reaches the public surface.
func (r *StoryRepository) List(ctx context.Context) ([]models.Story, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"original_body": 0})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Story
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// IncrementSupports bumps the support counter and returns the new value.
func (r *StoryRepository) IncrementSupports(ctx context.Context, id primitive.ObjectID) (int64, error) {
	update := bson.M{"$inc": bson.M{"supports": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s models.Story
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&s); err != nil {
		return 0, err
	}
	return s.Supports, nil
}

func (r *StoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
