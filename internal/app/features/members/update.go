// internal/app/features/members/update.go
package members

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	memberstore "github.com/dalemusser/familytree/internal/app/store/members"
	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/patch"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleUpdate serves PUT /members/{id}. Only fields in updateSpec may be
// sent; tree_id and the timestamps are rejected.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		apierr.NotFound(w, "Member not found.")
		return
	}

	var body map[string]json.RawMessage
	if err := httpjson.Decode(w, r, &body); err != nil {
		h.ErrLog.LogServerError(w, r, "update member: decode body failed", err)
		return
	}
	changes, err := updateSpec.Apply(body)
	if err != nil {
		var perr *patch.Error
		if errors.As(err, &perr) {
			apierr.BadRequest(w, perr.Message)
			return
		}
		h.ErrLog.LogServerError(w, r, "update member: apply patch failed", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update member")
	defer cancel()

	m, err := h.Members.Update(ctx, id, changes)
	if errors.Is(err, memberstore.ErrNotFound) {
		apierr.NotFound(w, "Member not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update member failed", err, zap.String("member_id", id.Hex()))
		return
	}
	httpjson.Write(w, http.StatusOK, m)
}
