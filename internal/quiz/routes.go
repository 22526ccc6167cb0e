package quiz

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/pending", h.GetPending)
	r.Get("/can-take-final", h.CanTakeFinal)
	r.Get("/attempts", h.ListMyAttempts)
	r.Post("/{id}/attempts", h.SubmitAttempt)

	r.Get("/results", h.GetResults)
	r.Get("/results/export", h.ExportResults)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)

	return r
}
