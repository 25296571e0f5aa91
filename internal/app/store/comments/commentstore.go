package commentstore

import (
	"context"
	"time"

	"github.com/buzzboard/buzzboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments"), users: db.Collection("users")}
}

func (s *Store) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.UserName = "" // derived on reads, never stored
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Comment, error) {
	var c models.Comment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// List returns comments in creation order, optionally scoped to one
// event, with each commenter's display name joined in.
func (s *Store) List(ctx context.Context, eventID *primitive.ObjectID) ([]models.Comment, error) {
	q := bson.M{}
	if eventID != nil {
		q["event"] = *eventID
	}
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}

	if err := s.fillUserNames(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *Store) fillUserNames(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	idSet := make(map[primitive.ObjectID]struct{}, len(comments))
	ids := make([]primitive.ObjectID, 0, len(comments))
	for _, c := range comments {
		if _, seen := idSet[c.User]; !seen {
			idSet[c.User] = struct{}{}
			ids = append(ids, c.User)
		}
	}

	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	names := make(map[primitive.ObjectID]string, len(ids))
	var row struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	for cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return err
		}
		names[row.ID] = row.Name
	}
	if err := cur.Err(); err != nil {
		return err
	}

	for i := range comments {
		comments[i].UserName = names[comments[i].User]
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
