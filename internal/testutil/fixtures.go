package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/familytree/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call a handler method directly.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures inserts test documents directly, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// CreateTree inserts a tree owned by userID.
func (f *Fixtures) CreateTree(ctx context.Context, userID, name string) models.FamilyTree {
	f.t.Helper()

	ts := now()
	tree := models.FamilyTree{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := f.db.Collection("family_trees").InsertOne(ctx, tree); err != nil {
		f.t.Fatalf("failed to create test tree: %v", err)
	}
	return tree
}

// CreateMember inserts a member into treeID.
func (f *Fixtures) CreateMember(ctx context.Context, treeID primitive.ObjectID, firstName, lastName string) models.Member {
	f.t.Helper()

	ts := now()
	m := models.Member{
		ID:        primitive.NewObjectID(),
		TreeID:    treeID,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}

// CreateRelationship inserts a biological relationship between two members.
func (f *Fixtures) CreateRelationship(ctx context.Context, treeID, p1, p2 primitive.ObjectID, relType string) models.Relationship {
	f.t.Helper()

	rel := models.Relationship{
		ID:               primitive.NewObjectID(),
		TreeID:           treeID,
		Person1ID:        p1,
		Person2ID:        p2,
		RelationshipType: relType,
		Nature:           models.NatureBiological,
		CreatedAt:        now(),
	}
	if _, err := f.db.Collection("relationships").InsertOne(ctx, rel); err != nil {
		f.t.Fatalf("failed to create test relationship: %v", err)
	}
	return rel
}

// Count returns the number of documents in coll matching filter.
func (f *Fixtures) Count(ctx context.Context, coll string, filter any) int64 {
	f.t.Helper()

	n, err := f.db.Collection(coll).CountDocuments(ctx, filter)
	if err != nil {
		f.t.Fatalf("count %s: %v", coll, err)
	}
	return n
}
