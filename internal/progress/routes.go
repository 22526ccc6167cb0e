package progress

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetOverview)
	r.Get("/activity", h.RecentActivity)
	r.Post("/contents/{contentID}/complete", h.MarkCompleted)

	return r
}
