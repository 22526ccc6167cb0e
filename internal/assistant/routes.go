package assistant

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/chat", h.Chat)
	r.Get("/history", h.History)
	r.Delete("/history", h.Clear)

	return r
}
