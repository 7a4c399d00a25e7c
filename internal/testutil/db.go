package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/familytree/internal/app/system/indexes"
	"github.com/dalemusser/familytree/internal/app/system/validators"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnvTestMongoURI overrides the MongoDB used by SetupTestDB.
const EnvTestMongoURI = "FAMILYTREE_TEST_MONGO_URI"

const defaultTestMongoURI = "mongodb://localhost:27017"

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

func sharedClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		uri := os.Getenv(EnvTestMongoURI)
		if uri == "" {
			uri = defaultTestMongoURI
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		opts := options.Client().
			ApplyURI(uri).
			SetServerSelectionTimeout(3 * time.Second).
			SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
		c, err := mongo.Connect(ctx, opts)
		if err != nil {
			clientErr = err
			return
		}
		if err := c.Ping(ctx, nil); err != nil {
			_ = c.Disconnect(context.Background())
			clientErr = err
			return
		}
		client = c
	})
	return client, clientErr
}

// TestContext returns a context with a deadline suitable for a single test step.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// SetupTestDB returns a fresh database with collection validators and indexes
// in place. The database is dropped when the test finishes. The test is
// skipped when MongoDB is unreachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	c, err := sharedClient()
	if err != nil {
		t.Skipf("MongoDB not available (%s): %v", EnvTestMongoURI, err)
	}

	name := dbName(t)
	db := c.Database(name)

	ctx, cancel := TestContext()
	defer cancel()
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure validators: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := TestContext()
		defer cancel()
		_ = db.Drop(ctx)
	})
	return db
}

// dbName builds a unique database name. MongoDB limits names to 63 bytes and
// forbids some punctuation, so the test name is shortened and cleaned.
func dbName(t *testing.T) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, t.Name())
	if len(clean) > 30 {
		clean = clean[:30]
	}
	return fmt.Sprintf("ft_%s_%s", clean, primitive.NewObjectID().Hex())
}
