package mongo

import (
	"context"

	"github.com/Prince260602/internhubs/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListingRepository persists jobs and internships. id arguments are the
// public listing id (job_id / internship_id) or the document _id hex.
type ListingRepository[T any] interface {
	Insert(ctx context.Context, doc *T) error
	List(ctx context.Context, limit int64) ([]T, error)
	Update(ctx context.Context, id string, set bson.M) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

type listingRepo[T any] struct {
	col *mongo.Collection
	key string
}

func NewJobRepo(db *mongo.Database) ListingRepository[models.Job] {
	return &listingRepo[models.Job]{col: db.Collection(CollJobs), key: "job_id"}
}

func NewInternshipRepo(db *mongo.Database) ListingRepository[models.Internship] {
	return &listingRepo[models.Internship]{col: db.Collection(CollInternships), key: "internship_id"}
}

func (r *listingRepo[T]) Insert(ctx context.Context, doc *T) error {
	_, err := r.col.InsertOne(ctx, doc)
	return translate(err)
}

// List returns listings newest first. limit <= 0 returns every document.
func (r *listingRepo[T]) List(ctx context.Context, limit int64) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *listingRepo[T]) Update(ctx context.Context, id string, set bson.M) (*T, error) {
	var out T
	err := r.col.FindOneAndUpdate(ctx,
		publicIDFilter(r.key, id),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (r *listingRepo[T]) Delete(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.col.FindOneAndDelete(ctx, publicIDFilter(r.key, id)).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}
