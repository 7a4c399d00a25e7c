// internal/app/features/relationships/list.go
package relationships

import (
	"errors"
	"net/http"
	"strings"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	relationshipstore "github.com/dalemusser/familytree/internal/app/store/relationships"
	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/normalize"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/dalemusser/familytree/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleList serves GET /relationships?treeId=X.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	raw := normalize.ID(query.Get(r, "treeId"))
	if raw == "" {
		apierr.BadRequest(w, "treeId is required.")
		return
	}
	treeID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httpjson.Write(w, http.StatusOK, []models.Relationship{})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list relationships")
	defer cancel()

	rels, err := h.Relationships.ListByTree(ctx, treeID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list relationships failed", err, zap.String("tree_id", raw))
		return
	}
	httpjson.Write(w, http.StatusOK, rels)
}

// HandleGet serves GET /relationships/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		apierr.NotFound(w, "Relationship not found.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get relationship")
	defer cancel()

	rel, err := h.Relationships.GetByID(ctx, id)
	if errors.Is(err, relationshipstore.ErrNotFound) {
		apierr.NotFound(w, "Relationship not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get relationship failed", err, zap.String("relationship_id", id.Hex()))
		return
	}
	httpjson.Write(w, http.StatusOK, rel)
}
