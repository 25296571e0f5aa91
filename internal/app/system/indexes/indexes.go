// Package indexes creates the MongoDB indexes the app relies on.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll is called at startup. Index creation is idempotent; errors
// are aggregated so every problem is visible and startup can fail fast.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	ensure := func(coll string, models []mongo.IndexModel) {
		_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		logger.Debug("indexes ensured", zap.String("collection", coll))
	}

	unique := options.Index().SetUnique(true)

	ensure("users", []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}, Options: options.Index().SetSparse(true)},
	})
	ensure("clubs", []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "members", Value: 1}}},
	})
	ensure("events", []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "startAt", Value: 1}}},
		{Keys: bson.D{{Key: "club", Value: 1}}},
	})
	ensure("rsvps", []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "event", Value: 1}}, Options: unique},
	})
	ensure("volunteers", []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "event", Value: 1}}, Options: unique},
	})
	ensure("comments", []mongo.IndexModel{
		{Keys: bson.D{{Key: "event", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	ensure("galleries", []mongo.IndexModel{
		{Keys: bson.D{{Key: "event", Value: 1}}, Options: unique},
	})
	ensure("notifications", []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
