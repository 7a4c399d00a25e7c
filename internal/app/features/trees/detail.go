// internal/app/features/trees/detail.go
package trees

import (
	"errors"
	"net/http"
	"strings"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	treestore "github.com/dalemusser/familytree/internal/app/store/trees"
	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/dalemusser/familytree/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// detailResponse is the whole tree in one round trip.
type detailResponse struct {
	Tree          models.FamilyTree     `json:"tree"`
	Members       []models.Member       `json:"members"`
	Relationships []models.Relationship `json:"relationships"`
}

// HandleDetail serves GET /trees/{treeId}. An id that is not an ObjectID
// cannot name a stored tree, so it is reported as not found.
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(chi.URLParam(r, "treeId"))
	if raw == "" {
		apierr.BadRequest(w, "treeId is required.")
		return
	}
	treeID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		apierr.NotFound(w, "Family tree not found.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "tree detail")
	defer cancel()

	tree, err := h.Trees.GetByID(ctx, treeID)
	if errors.Is(err, treestore.ErrNotFound) {
		apierr.NotFound(w, "Family tree not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load tree failed", err, zap.String("tree_id", raw))
		return
	}

	members, err := h.Members.ListByTree(ctx, treeID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list tree members failed", err, zap.String("tree_id", raw))
		return
	}
	rels, err := h.Relationships.ListByTree(ctx, treeID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list tree relationships failed", err, zap.String("tree_id", raw))
		return
	}

	httpjson.Write(w, http.StatusOK, detailResponse{Tree: tree, Members: members, Relationships: rels})
}
