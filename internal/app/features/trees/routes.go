// internal/app/features/trees/routes.go
package trees

import "github.com/go-chi/chi/v5"

// Routes mounts the tree endpoints. Typically: r.Mount("/trees", trees.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{treeId}", h.HandleDetail)
	return r
}
