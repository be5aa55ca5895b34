package mongo

import (
	"context"
	"time"

	"github.com/Prince260602/internhubs/internal/models"
	"github.com/Prince260602/internhubs/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	UpdateRefs(ctx context.Context, p *models.Profile) error
}

type profileRepo struct {
	col *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) ProfileRepository {
	return &profileRepo{col: db.Collection(CollProfiles)}
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return translate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *profileRepo) UpdateRefs(ctx context.Context, p *models.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": p.ID},
		bson.M{"$set": bson.M{
			"personal_details":        p.PersonalDetails,
			"educational_details":     p.EducationalDetails,
			"work_experience_details": p.WorkExperienceDetails,
			"social_media_links":      p.SocialMediaLinks,
			"skillset":                p.Skillset,
			"updated_at":              p.UpdatedAt,
		}},
	)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
