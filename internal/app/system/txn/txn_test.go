package txn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/familytree/internal/app/system/txn"
	"github.com/dalemusser/familytree/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some random error"), false},
		{"command error code 20", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}, true},
		{"command error code 263", mongo.CommandError{Code: 263, Message: "Cannot run in a multi-document transaction"}, true},
		{"other command error code", mongo.CommandError{Code: 100, Message: "Some other error"}, false},
		{"transaction on replica set", errors.New("transaction failed because this is not a replica set member"), true},
		{"session not supported", errors.New("session operations are not supported on this server"), true},
		{"only transaction", errors.New("transaction failed"), false},
		{"transaction and session", errors.New("cannot start transaction in current session state"), true},
		{"wrapped", errors.Join(errors.New("delete member"), mongo.CommandError{Code: 20}), true},
		{"upper case", errors.New("TRANSACTION FAILED on REPLICA SET"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := txn.IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRun_CommitsAllSteps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := txn.Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		if _, err := db.Collection("a").InsertOne(ctx, bson.M{"k": 1}); err != nil {
			return err
		}
		_, err := db.Collection("b").InsertOne(ctx, bson.M{"k": 2})
		return err
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{"a", "b"} {
		n, err := db.Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != 1 {
			t.Errorf("collection %s: got %d docs, want 1", name, n)
		}
	}
}

func TestRun_ReturnsStepError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	boom := errors.New("boom")
	err := txn.Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}
