// internal/app/store/relationships/relationshipstore.go
package relationshipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/familytree/internal/app/system/patch"
	"github.com/dalemusser/familytree/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding relationships.
const Collection = "relationships"

var (
	// ErrNotFound is returned when no relationship has the requested id.
	ErrNotFound = errors.New("relationship not found")
	// ErrDuplicateRelationship is returned when a write would create a second
	// relationship with the same tree, persons and type.
	ErrDuplicateRelationship = errors.New("relationship already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts a relationship. Nature defaults to biological. The unique
// tuple index makes the duplicate check atomic with the insert.
func (s *Store) Create(ctx context.Context, rel models.Relationship) (models.Relationship, error) {
	rel.ID = primitive.NewObjectID()
	if rel.Nature == "" {
		rel.Nature = models.NatureBiological
	}
	rel.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := s.c.InsertOne(ctx, rel); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Relationship{}, ErrDuplicateRelationship
		}
		return models.Relationship{}, err
	}
	return rel, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Relationship, error) {
	var rel models.Relationship
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Relationship{}, ErrNotFound
	}
	if err != nil {
		return models.Relationship{}, err
	}
	return rel, nil
}

// ListByTree returns all relationships of a tree in creation order. The
// result is never nil.
func (s *Store) ListByTree(ctx context.Context, treeID primitive.ObjectID) ([]models.Relationship, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"tree_id": treeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rels := []models.Relationship{}
	if err := cur.All(ctx, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}

// Update applies validated changes and returns the document after the write.
// Relationships carry no updated_at, so an empty change set is a read.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, ch patch.Changes) (models.Relationship, error) {
	if ch.Empty() {
		return s.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rel models.Relationship
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, ch.Update(), opts).Decode(&rel)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.Relationship{}, ErrNotFound
	case wafflemongo.IsDup(err):
		return models.Relationship{}, ErrDuplicateRelationship
	case err != nil:
		return models.Relationship{}, err
	}
	return rel, nil
}

// Delete removes a relationship by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByMember removes every relationship naming memberID on either side,
// in any tree. Safe to repeat.
func (s *Store) DeleteByMember(ctx context.Context, memberID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"$or": []bson.M{
		{"person1_id": memberID},
		{"person2_id": memberID},
	}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
