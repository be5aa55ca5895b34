package config

import (
	"context"
	"errors"
	"time"

	mongorepo "github.com/Prince260602/internhubs/internal/repositories/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return errors.New("mongo database is nil; call InitMongo() first")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// users: login lookup + one account per email
	_, err := db.Collection(mongorepo.CollUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "emailId", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	})
	if err != nil {
		return err
	}

	// profiles: at most one profile per user, enforced by the server
	_, err = db.Collection(mongorepo.CollProfiles).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("uniq_user_profile").SetUnique(true),
	})
	if err != nil {
		return err
	}

	// listings are addressed by their public ids
	_, err = db.Collection(mongorepo.CollJobs).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}},
			Options: options.Index().SetName("uniq_job_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_company_created"),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(mongorepo.CollInternships).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "internship_id", Value: 1}},
			Options: options.Index().SetName("uniq_internship_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "company_Id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_company_created"),
		},
	})
	return err
}
