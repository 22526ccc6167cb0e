package content

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/auth"
	"github.com/rkive-app/rkive-api/internal/config"
	"github.com/rkive-app/rkive-api/internal/user"
)

type Handler struct {
	service  ContentService
	userRepo user.UserRepository
}

func NewHandler(service ContentService, userRepo user.UserRepository) *Handler {
	return &Handler{service: service, userRepo: userRepo}
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) *user.User {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil
	}
	u, err := h.userRepo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil || u == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil
	}
	return u
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrContentNotFound):
		http.Error(w, "content not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// GetTrail devolve a trilha do usuário logado: itens visíveis ordenados,
// com os obrigatórios destacados.
func (h *Handler) GetTrail(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u := h.currentUser(w, r)
	if u == nil {
		return
	}

	trail, err := h.service.ResolveTrail(r.Context(), u)
	if err != nil {
		log.WithError(err).Error("Erro ao montar trilha do usuário")
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, trail)
}

func (h *Handler) ListVisible(w http.ResponseWriter, r *http.Request) {
	u := h.currentUser(w, r)
	if u == nil {
		return
	}

	contents, err := h.service.ListVisible(r.Context(), u)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, contents)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	contents, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, contents)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateContentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para criar conteúdo")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.Create(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto UpdateContentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Corpo da requisição inválido para atualizar conteúdo")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
