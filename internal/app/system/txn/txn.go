// Package txn runs multi-step store operations in a MongoDB transaction when
// the deployment supports one.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a multi-document transaction. Standalone servers
// cannot run transactions; there fn is run once more without a session, so
// every step in fn must be safe to repeat.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if !IsNotSupported(err) {
			return err
		}
		log.Debug("sessions unsupported, running without transaction", zap.Error(err))
		return fn(ctx)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("transactions unsupported, running without transaction", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err means the server cannot run sessions or
// transactions (standalone mongod, some DocumentDB versions).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation, ..., OperationNotSupportedInTransaction
			return true
		}
	}

	s := strings.ToLower(err.Error())
	txnish := strings.Contains(s, "transaction") || strings.Contains(s, "session")
	if !txnish {
		return false
	}
	return strings.Contains(s, "replica set") ||
		strings.Contains(s, "not supported") ||
		strings.Contains(s, "illegal operation") ||
		(strings.Contains(s, "transaction") && strings.Contains(s, "session"))
}
