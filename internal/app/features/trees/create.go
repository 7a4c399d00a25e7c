// internal/app/features/trees/create.go
package trees

import (
	"net/http"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	"github.com/dalemusser/familytree/internal/app/system/htmlsanitize"
	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/inputval"
	"github.com/dalemusser/familytree/internal/app/system/normalize"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/dalemusser/familytree/internal/domain/models"
	"go.uber.org/zap"
)

type createTreeInput struct {
	UserID      string `json:"user_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// HandleCreate serves POST /trees.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createTreeInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.LogServerError(w, r, "create tree: decode body failed", err)
		return
	}
	in.UserID = normalize.ID(in.UserID)
	in.Name = htmlsanitize.PlainText(normalize.Name(in.Name))
	in.Description = htmlsanitize.PlainText(normalize.Text(in.Description))

	if res := inputval.Validate(in); res.HasErrors() {
		apierr.BadRequest(w, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create tree")
	defer cancel()

	tree, err := h.Trees.Create(ctx, models.FamilyTree{
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create tree failed", err, zap.String("user_id", in.UserID))
		return
	}
	h.Log.Info("tree created", zap.String("tree_id", tree.ID.Hex()), zap.String("user_id", tree.UserID))
	httpjson.Write(w, http.StatusOK, tree)
}
