// internal/app/features/relationships/delete.go
package relationships

import (
	"net/http"
	"strings"

	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

// HandleDelete serves DELETE /relationships/{id}. It succeeds whether or not
// the relationship existed.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ok := messageResponse{Message: "Relationship deleted successfully"}

	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		httpjson.Write(w, http.StatusOK, ok)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete relationship")
	defer cancel()

	n, err := h.Relationships.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete relationship failed", err, zap.String("relationship_id", id.Hex()))
		return
	}
	h.Log.Debug("relationship delete", zap.String("relationship_id", id.Hex()), zap.Int64("deleted", n))
	httpjson.Write(w, http.StatusOK, ok)
}
