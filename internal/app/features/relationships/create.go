// internal/app/features/relationships/create.go
package relationships

import (
	"errors"
	"net/http"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	relationshipstore "github.com/dalemusser/familytree/internal/app/store/relationships"
	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/inputval"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/dalemusser/familytree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate serves POST /relationships. A repeated tuple is a 409 and
// writes nothing.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createRelationshipInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.LogServerError(w, r, "create relationship: decode body failed", err)
		return
	}
	in.normalize()

	if res := inputval.Validate(in); res.HasErrors() {
		apierr.BadRequest(w, res.First())
		return
	}

	// Validated above as ObjectIDs.
	treeID, _ := primitive.ObjectIDFromHex(in.TreeID)
	p1, _ := primitive.ObjectIDFromHex(in.Person1ID)
	p2, _ := primitive.ObjectIDFromHex(in.Person2ID)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create relationship")
	defer cancel()

	rel, err := h.Relationships.Create(ctx, models.Relationship{
		TreeID:           treeID,
		Person1ID:        p1,
		Person2ID:        p2,
		RelationshipType: in.RelationshipType,
		MarriageDate:     in.MarriageDate,
		DivorceDate:      in.DivorceDate,
		Nature:           in.Nature,
	})
	if errors.Is(err, relationshipstore.ErrDuplicateRelationship) {
		h.Metrics.RecordConflict()
		apierr.Conflict(w, duplicateMessage)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create relationship failed", err, zap.String("tree_id", in.TreeID))
		return
	}
	httpjson.Write(w, http.StatusOK, rel)
}
