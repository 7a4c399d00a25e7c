// internal/app/store/trees/treestore.go
package treestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/familytree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding family trees.
const Collection = "family_trees"

// ErrNotFound is returned when no tree has the requested id.
var ErrNotFound = errors.New("family tree not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create assigns an id and timestamps and inserts the tree.
func (s *Store) Create(ctx context.Context, tree models.FamilyTree) (models.FamilyTree, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	tree.ID = primitive.NewObjectID()
	tree.CreatedAt = now
	tree.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, tree); err != nil {
		return models.FamilyTree{}, err
	}
	return tree, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.FamilyTree, error) {
	var tree models.FamilyTree
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&tree)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.FamilyTree{}, ErrNotFound
	}
	if err != nil {
		return models.FamilyTree{}, err
	}
	return tree, nil
}

// ListByUser returns every tree owned by userID in creation order. The result
// is never nil.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.FamilyTree, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	trees := []models.FamilyTree{}
	if err := cur.All(ctx, &trees); err != nil {
		return nil, err
	}
	return trees, nil
}
