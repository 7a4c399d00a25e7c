// internal/app/features/members/handler.go
package members

import (
	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	memberstore "github.com/dalemusser/familytree/internal/app/store/members"
	relationshipstore "github.com/dalemusser/familytree/internal/app/store/relationships"
	"github.com/dalemusser/familytree/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Members.
// It holds the DB handle, stores, and logger provided by WAFFLE DBDeps / Startup.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *apierr.ErrorLogger
	Metrics       *metrics.Metrics
	Members       *memberstore.Store
	Relationships *relationshipstore.Store
}

// NewHandler wires the member and relationship stores. mtr may be nil.
func NewHandler(db *mongo.Database, errLog *apierr.ErrorLogger, mtr *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Metrics:       mtr,
		Members:       memberstore.New(db),
		Relationships: relationshipstore.New(db),
	}
}
