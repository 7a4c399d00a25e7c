// internal/app/features/members/delete.go
package members

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/dalemusser/familytree/internal/app/system/txn"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

// HandleDelete serves DELETE /members/{id}. The member and every relationship
// naming it (in any tree) are removed together. Deleting an absent member,
// or an id that cannot exist, still succeeds.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ok := messageResponse{Message: "Member deleted successfully"}

	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		httpjson.Write(w, http.StatusOK, ok)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete member")
	defer cancel()

	var deleted, cascaded int64
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		n, err := h.Members.Delete(ctx, id)
		if err != nil {
			return err
		}
		c, err := h.Relationships.DeleteByMember(ctx, id)
		if err != nil {
			return err
		}
		deleted, cascaded = n, c
		return nil
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete member failed", err, zap.String("member_id", id.Hex()))
		return
	}

	h.Metrics.RecordCascade(cascaded)
	h.Log.Info("member deleted",
		zap.String("member_id", id.Hex()),
		zap.Int64("members_deleted", deleted),
		zap.Int64("relationships_deleted", cascaded))
	httpjson.Write(w, http.StatusOK, ok)
}
