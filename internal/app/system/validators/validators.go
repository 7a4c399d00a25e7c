// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/familytree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("family_trees", familyTreesSchema())
	ensure("members", membersSchema())
	ensure("relationships", relationshipsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers ---------------------- */

// ensureCollection idempotently makes sure name exists. created is true only
// when this call created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	names, listErr := db.ListCollectionNames(ctx, bson.M{"name": name})
	if listErr == nil && len(names) > 0 {
		zap.L().Debug("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		// Lost a race with another instance or a prior run.
		if hasCode(err, 48) || containsAny(err, "already exists", "namespace exists") {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func hasCode(err error, codes ...int32) bool {
	var ce mongo.CommandError
	if !errors.As(err, &ce) {
		return false
	}
	for _, c := range codes {
		if ce.Code == c {
			return true
		}
	}
	return false
}

func containsAny(err error, needles ...string) bool {
	s := strings.ToLower(err.Error())
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func isNoSuchCommand(err error) bool {
	return err != nil && (hasCode(err, 59) || containsAny(err, "no such command"))
}

func isNotImplemented(err error) bool {
	return err != nil && (hasCode(err, 115) || containsAny(err, "not implemented", "not supported"))
}

/* ------------------------- JSON-Schema docs ---------------------- */

// nonBlank matches a string with at least one non-space character.
var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func familyTreesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "name", "created_at"},
			"properties": bson.M{
				"user_id":     nonBlank,
				"name":        nonBlank,
				"description": bson.M{"bsonType": "string"},
				"created_at":  bson.M{"bsonType": "date"},
				"updated_at":  bson.M{"bsonType": "date"},
			},
		},
	}
}

func membersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"tree_id", "first_name", "last_name", "is_root"},
			"properties": bson.M{
				"tree_id":    bson.M{"bsonType": "objectId"},
				"first_name": nonBlank,
				"last_name":  nonBlank,
				"gender":     bson.M{"bsonType": "string"},
				"birth_date": bson.M{"bsonType": bson.A{"date", "null"}},
				"death_date": bson.M{"bsonType": bson.A{"date", "null"}},
				"photo_url":  bson.M{"bsonType": "string"},
				"is_root":    bson.M{"bsonType": "bool"},
				"attributes": bson.M{"bsonType": "object"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func relationshipsSchema() bson.M {
	natureEnum := bson.A{}
	for _, n := range models.Natures {
		natureEnum = append(natureEnum, n)
	}

	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"tree_id", "person1_id", "person2_id", "relationship_type", "nature"},
			"properties": bson.M{
				"tree_id":           bson.M{"bsonType": "objectId"},
				"person1_id":        bson.M{"bsonType": "objectId"},
				"person2_id":        bson.M{"bsonType": "objectId"},
				"relationship_type": nonBlank,
				"marriage_date":     bson.M{"bsonType": bson.A{"date", "null"}},
				"divorce_date":      bson.M{"bsonType": bson.A{"date", "null"}},
				"nature":            bson.M{"enum": natureEnum},
				"created_at":        bson.M{"bsonType": "date"},
			},
		},
	}
}
