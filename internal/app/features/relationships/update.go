// internal/app/features/relationships/update.go
package relationships

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	relationshipstore "github.com/dalemusser/familytree/internal/app/store/relationships"
	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/patch"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleUpdate serves PUT /relationships/{id}. Fields not in the body keep
// their stored values.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		apierr.NotFound(w, "Relationship not found.")
		return
	}

	var body map[string]json.RawMessage
	if err := httpjson.Decode(w, r, &body); err != nil {
		h.ErrLog.LogServerError(w, r, "update relationship: decode body failed", err)
		return
	}
	changes, err := updateSpec.Apply(body)
	if err != nil {
		var perr *patch.Error
		if errors.As(err, &perr) {
			apierr.BadRequest(w, perr.Message)
			return
		}
		h.ErrLog.LogServerError(w, r, "update relationship: apply patch failed", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update relationship")
	defer cancel()

	rel, err := h.Relationships.Update(ctx, id, changes)
	switch {
	case errors.Is(err, relationshipstore.ErrNotFound):
		apierr.NotFound(w, "Relationship not found.")
		return
	case errors.Is(err, relationshipstore.ErrDuplicateRelationship):
		h.Metrics.RecordConflict()
		apierr.Conflict(w, duplicateMessage)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update relationship failed", err, zap.String("relationship_id", id.Hex()))
		return
	}
	httpjson.Write(w, http.StatusOK, rel)
}
