package progress

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/auth"
	"github.com/rkive-app/rkive-api/internal/config"
	"github.com/rkive-app/rkive-api/internal/content"
	"github.com/rkive-app/rkive-api/internal/user"
)

type Handler struct {
	service        ProgressService
	contentService content.ContentService
	userRepo       user.UserRepository
}

func NewHandler(service ProgressService, contentService content.ContentService, userRepo user.UserRepository) *Handler {
	return &Handler{service: service, contentService: contentService, userRepo: userRepo}
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

func (h *Handler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u := h.currentUser(w, r)
	if u == nil {
		return
	}

	contentID, err := uuid.Parse(chi.URLParam(r, "contentID"))
	if err != nil {
		http.Error(w, "invalid content id", http.StatusBadRequest)
		return
	}

	if err := h.service.MarkCompleted(r.Context(), u.ID, contentID); err != nil {
		if errors.Is(err, content.ErrContentNotFound) {
			http.Error(w, "content not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Erro ao concluir conteúdo")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "content completed",
	})
}

// GetOverview junta trilha, percentual obrigatório e próximos passos.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	u := h.currentUser(w, r)
	if u == nil {
		return
	}

	trail, err := h.contentService.ResolveTrail(r.Context(), u)
	if err != nil {
		log.WithError(err).Error("Erro ao montar trilha para o resumo de progresso")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	completed, err := h.service.CompletedMap(r.Context(), u.ID)
	if err != nil {
		log.WithError(err).Error("Erro ao carregar conclusões")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"percentRequired": PercentRequired(trail, completed),
		"requiredCount":   trail.RequiredCount,
		"completedCount":  len(completed),
		"nextRequired":    NextRequiredItems(trail, completed, 3),
	})
}

func (h *Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	u := h.currentUser(w, r)
	if u == nil {
		return
	}

	activities, err := h.service.RecentActivity(r.Context(), u.ID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, activities)
}
