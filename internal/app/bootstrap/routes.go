// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/familytree/internal/app/features/errors"
	healthfeature "github.com/dalemusser/familytree/internal/app/features/health"
	membersfeature "github.com/dalemusser/familytree/internal/app/features/members"
	relationshipsfeature "github.com/dalemusser/familytree/internal/app/features/relationships"
	treesfeature "github.com/dalemusser/familytree/internal/app/features/trees"
	"github.com/dalemusser/familytree/internal/app/system/httplog"
	"github.com/dalemusser/familytree/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. FamilyTree mounts the JSON API
// (trees, members, relationships) plus /health and, when enabled, /metrics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	var mtr *metrics.Metrics
	if appCfg.MetricsEnabled {
		mtr = metrics.New()
	}
	return newRouter(deps, mtr, logger), nil
}

// newRouter wires middleware and feature routers. mtr may be nil.
func newRouter(deps DBDeps, mtr *metrics.Metrics, logger *zap.Logger) chi.Router {
	db := deps.FamilyTreeMongoDatabase
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(httplog.RequestID)
	r.Use(httplog.AccessLog(logger))
	r.Use(httplog.Recoverer(logger))
	if mtr != nil {
		r.Use(mtr.Middleware)
		r.Handle("/metrics", mtr.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.NotFound(w, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.Write(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.FamilyTreeMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	treesHandler := treesfeature.NewHandler(db, errLog, logger)
	r.Mount("/trees", treesfeature.Routes(treesHandler))

	membersHandler := membersfeature.NewHandler(db, errLog, mtr, logger)
	r.Mount("/members", membersfeature.Routes(membersHandler))

	relationshipsHandler := relationshipsfeature.NewHandler(db, errLog, mtr, logger)
	r.Mount("/relationships", relationshipsfeature.Routes(relationshipsHandler))

	return r
}
