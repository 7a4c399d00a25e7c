// internal/app/features/members/list.go
package members

import (
	"errors"
	"net/http"
	"strings"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	memberstore "github.com/dalemusser/familytree/internal/app/store/members"
	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/normalize"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/dalemusser/familytree/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleList serves GET /members?treeId=X. A treeId that is not an ObjectID
// matches no members.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	raw := normalize.ID(query.Get(r, "treeId"))
	if raw == "" {
		apierr.BadRequest(w, "treeId is required.")
		return
	}
	treeID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httpjson.Write(w, http.StatusOK, []models.Member{})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list members")
	defer cancel()

	members, err := h.Members.ListByTree(ctx, treeID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list members failed", err, zap.String("tree_id", raw))
		return
	}
	httpjson.Write(w, http.StatusOK, members)
}

// HandleGet serves GET /members/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		apierr.NotFound(w, "Member not found.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get member")
	defer cancel()

	m, err := h.Members.GetByID(ctx, id)
	if errors.Is(err, memberstore.ErrNotFound) {
		apierr.NotFound(w, "Member not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get member failed", err, zap.String("member_id", id.Hex()))
		return
	}
	httpjson.Write(w, http.StatusOK, m)
}
