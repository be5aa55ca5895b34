package mongo

import (
	"context"
	"fmt"

	"github.com/Prince260602/internhubs/internal/models"
	"github.com/Prince260602/internhubs/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SectionRepository stores one kind of profile sub-document.
type SectionRepository[T any] interface {
	Insert(ctx context.Context, doc *T) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	Replace(ctx context.Context, id primitive.ObjectID, doc *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type sectionRepo[T any] struct {
	col *mongo.Collection
}

func newSectionRepo[T any](db *mongo.Database, name string) SectionRepository[T] {
	return &sectionRepo[T]{col: db.Collection(name)}
}

func (r *sectionRepo[T]) Insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, translate(err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s: unexpected inserted id %T", r.col.Name(), res.InsertedID)
	}
	return id, nil
}

func (r *sectionRepo[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var out T
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// Replace overwrites the document in place; its _id never changes.
func (r *sectionRepo[T]) Replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *sectionRepo[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return translate(err)
}

// SectionRepos bundles the five sub-document stores of a profile.
type SectionRepos struct {
	Personal  SectionRepository[models.PersonalDetails]
	Education SectionRepository[models.EducationalDetails]
	Work      SectionRepository[models.WorkExperienceDetails]
	Social    SectionRepository[models.SocialMediaLinks]
	Skillset  SectionRepository[models.Skillset]
}

func NewSectionRepos(db *mongo.Database) SectionRepos {
	return SectionRepos{
		Personal:  newSectionRepo[models.PersonalDetails](db, CollPersonalDetails),
		Education: newSectionRepo[models.EducationalDetails](db, CollEducation),
		Work:      newSectionRepo[models.WorkExperienceDetails](db, CollWorkExperience),
		Social:    newSectionRepo[models.SocialMediaLinks](db, CollSocialLinks),
		Skillset:  newSectionRepo[models.Skillset](db, CollSkillsets),
	}
}
