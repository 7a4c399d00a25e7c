// internal/app/features/trees/list.go
package trees

import (
	"net/http"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/normalize"
	"github.com/dalemusser/familytree/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// HandleList serves GET /trees?userId=X.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := normalize.ID(query.Get(r, "userId"))
	if userID == "" {
		apierr.BadRequest(w, "userId is required.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list trees")
	defer cancel()

	trees, err := h.Trees.ListByUser(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list trees failed", err, zap.String("user_id", userID))
		return
	}
	httpjson.Write(w, http.StatusOK, trees)
}
