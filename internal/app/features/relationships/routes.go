// internal/app/features/relationships/routes.go
package relationships

import "github.com/go-chi/chi/v5"

// Routes mounts the relationship endpoints.
// Typically: r.Mount("/relationships", relationships.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
