// internal/app/features/trees/handler.go
package trees

import (
	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	memberstore "github.com/dalemusser/familytree/internal/app/store/members"
	relationshipstore "github.com/dalemusser/familytree/internal/app/store/relationships"
	treestore "github.com/dalemusser/familytree/internal/app/store/trees"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for family trees.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *apierr.ErrorLogger
	Trees         *treestore.Store
	Members       *memberstore.Store
	Relationships *relationshipstore.Store
}

func NewHandler(db *mongo.Database, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Trees:         treestore.New(db),
		Members:       memberstore.New(db),
		Relationships: relationshipstore.New(db),
	}
}
