// internal/app/features/relationships/handler.go
package relationships

import (
	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	relationshipstore "github.com/dalemusser/familytree/internal/app/store/relationships"
	"github.com/dalemusser/familytree/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Relationships.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *apierr.ErrorLogger
	Metrics       *metrics.Metrics
	Relationships *relationshipstore.Store
}

// NewHandler wires the relationship store. mtr may be nil.
func NewHandler(db *mongo.Database, errLog *apierr.ErrorLogger, mtr *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Metrics:       mtr,
		Relationships: relationshipstore.New(db),
	}
}
