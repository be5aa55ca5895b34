package mongo

import (
	"errors"

	"github.com/Prince260602/internhubs/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollUsers           = "users"
	CollProfiles        = "profiles"
	CollPersonalDetails = "personal_details"
	CollEducation       = "educational_details"
	CollWorkExperience  = "work_experience_details"
	CollSocialLinks     = "social_media_links"
	CollSkillsets       = "skillsets"
	CollJobs            = "jobs"
	CollInternships     = "internships"
)

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return utils.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return errors.Join(utils.ErrDuplicate, err)
	default:
		return err
	}
}

// publicIDFilter matches a document by its public key, or by _id when the
// value is an ObjectID hex string.
func publicIDFilter(key, id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$or": bson.A{bson.M{key: id}, bson.M{"_id": oid}}}
	}
	return bson.M{key: id}
}
