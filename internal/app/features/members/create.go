// internal/app/features/members/create.go
package members

import (
	"net/http"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/inputval"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/dalemusser/familytree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate serves POST /members.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createMemberInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.LogServerError(w, r, "create member: decode body failed", err)
		return
	}
	in.normalize()

	if res := inputval.Validate(in); res.HasErrors() {
		apierr.BadRequest(w, res.First())
		return
	}
	if err := in.Attributes.Validate(); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	treeID, _ := primitive.ObjectIDFromHex(in.TreeID)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create member")
	defer cancel()

	m, err := h.Members.Create(ctx, models.Member{
		TreeID:     treeID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Gender:     in.Gender,
		BirthDate:  in.BirthDate,
		DeathDate:  in.DeathDate,
		PhotoURL:   in.PhotoURL,
		IsRoot:     in.IsRoot,
		Attributes: in.Attributes,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create member failed", err, zap.String("tree_id", in.TreeID))
		return
	}
	httpjson.Write(w, http.StatusOK, m)
}
