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

type LawRepository struct {
	col *mongo.Collection
}

func NewLawRepository(db *mongo.Database) *LawRepository {
	return &LawRepository{col: db.Collection("laws")}
}

// ListLawsOptions narrows and orders the public law search.
type ListLawsOptions struct {
	Query        string
	Category     string
	Year         int
	CourtLevel   string
	Jurisdiction string
	PracticeArea string
	LawType      string
	Sort         string // "newest", "year_desc", "year_asc" or default relevance
	Page         int
	PageSize     int
	PublishedOnly bool
	Published    *bool // admin filter; nil means both
}

func (o ListLawsOptions) filter() bson.M {
	q := bson.M{}
	if o.PublishedOnly {
		q["is_published"] = true
	} else if o.Published != nil {
		q["is_published"] = *o.Published
	}

	if o.Query != "" {
		rx := bson.M{"$regex": o.Query, "$options": "i"}
		q["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"statute_name": rx},
			bson.M{"keywords": rx},
			bson.M{"sections": rx},
			bson.M{"situations": rx},
			bson.M{"tags": rx},
			bson.M{"citizen.summary": rx},
			bson.M{"citizen.what_this_means": rx},
			bson.M{"citizen.real_life_example": rx},
			bson.M{"lawyer.official_text": rx},
			bson.M{"lawyer.interpretation": rx},
			bson.M{"lawyer.related_provisions": rx},
			bson.M{"lawyer.citations": rx},
			bson.M{"lawyer.commentary": rx},
		}
	}
	if o.Category != "" && o.Category != "All" {
		q["category"] = o.Category
	}
	if o.Year != 0 {
		q["year"] = o.Year
	}
	if o.CourtLevel != "" {
		q["court_level"] = o.CourtLevel
	}
	if o.Jurisdiction != "" {
		q["jurisdiction"] = bson.M{"$regex": o.Jurisdiction, "$options": "i"}
	}
	if o.PracticeArea != "" {
		q["practice_area"] = bson.M{"$regex": o.PracticeArea, "$options": "i"}
	}
	if o.LawType != "" {
		q["law_type"] = o.LawType
	}
	return q
}

func (o ListLawsOptions) sort() bson.D {
	switch o.Sort {
	case "newest":
		return bson.D{{Key: "created_at", Value: -1}}
	case "year_desc":
		return bson.D{{Key: "year", Value: -1}}
	case "year_asc":
		return bson.D{{Key: "year", Value: 1}}
	default:
		return bson.D{{Key: "relevance_score", Value: -1}, {Key: "created_at", Value: -1}}
	}
}

// List returns a page of laws plus the total match count.
func (r *LawRepository) List(ctx context.Context, o ListLawsOptions) ([]models.Law, int64, error) {
	page := o.Page
	if page < 1 {
		page = 1
	}
	pageSize := o.PageSize
	if pageSize < 1 {
		pageSize = 12
	}
	if pageSize > 100 {
		pageSize = 100
	}

	filter := o.filter()
	findOpts := options.Find().
		SetSort(o.sort()).
		SetLimit(int64(pageSize)).
		SetSkip(int64((page - 1) * pageSize))

	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []models.Law
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Suggest returns up to limit lightweight matches for the search bar.
func (r *LawRepository) Suggest(ctx context.Context, query string, limit int) ([]models.Law, error) {
	rx := bson.M{"$regex": query, "$options": "i"}
	filter := bson.M{
		"is_published": true,
		"$or": bson.A{
			bson.M{"title": rx},
			bson.M{"statute_name": rx},
			bson.M{"keywords": rx},
			bson.M{"tags": rx},
		},
	}
	opts := options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{"title": 1, "statute_name": 1, "year": 1, "category": 1, "slug": 1})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Law
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindBySlugOrID resolves an identifier that may be an ObjectID hex or a
// slug. Published-only lookups are used on the public surface.
func (r *LawRepository) FindBySlugOrID(ctx context.Context, identifier string, publishedOnly bool) (*models.Law, error) {
	base := bson.M{}
	if publishedOnly {
		base["is_published"] = true
	}

	if id, err := primitive.ObjectIDFromHex(identifier); err == nil {
		filter := bson.M{"_id": id}
		for k, v := range base {
			filter[k] = v
		}
		var l models.Law
		if err := r.col.FindOne(ctx, filter).Decode(&l); err == nil {
			return &l, nil
		}
	}

	filter := bson.M{"slug": identifier}
	for k, v := range base {
		filter[k] = v
	}
	var l models.Law
	if err := r.col.FindOne(ctx, filter).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LawRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Law, error) {
	var l models.Law
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

// SlugExists reports whether a slug is already taken by another document.
func (r *LawRepository) SlugExists(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LawRepository) Insert(ctx context.Context, l *models.Law) (*models.Law, error) {
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, l)
	if err != nil {
		return nil, err
	}
	l.ID = res.InsertedID.(primitive.ObjectID)
	return l, nil
}

func (r *LawRepository) Replace(ctx context.Context, l *models.Law) (*models.Law, error) {
	l.UpdatedAt = time.Now()
	if err := r.col.FindOneAndReplace(
		ctx,
		bson.M{"_id": l.ID},
		l,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LawRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetPublished flips the publish flag and returns the updated document.
func (r *LawRepository) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) (*models.Law, error) {
	update := bson.M{"$set": bson.M{"is_published": published, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var l models.Law
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}
