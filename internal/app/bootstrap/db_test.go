package bootstrap

import (
	"testing"

	"github.com/dalemusser/familytree/internal/app/system/indexes"
	"github.com/dalemusser/familytree/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{FamilyTreeMongoClient: db.Client(), FamilyTreeMongoDatabase: db}
	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, nil, AppConfig{}, deps, zap.NewNop()); err != nil {
			t.Fatalf("EnsureSchema #%d: %v", i+1, err)
		}
	}

	cur, err := db.Collection("relationships").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes: %v", err)
	}
	defer cur.Close(ctx)
	found := false
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err == nil && idx["name"] == indexes.RelationshipTupleIndex {
			found = true
		}
	}
	if !found {
		t.Errorf("index %s not present", indexes.RelationshipTupleIndex)
	}
}
