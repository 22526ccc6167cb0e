package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(service QuizService) *Handler {
	return &Handler{service: service}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		config.JSON(w, http.StatusForbidden, map[string]string{"error": "acesso negado"})
	case errors.Is(err, ErrQuizNotFound):
		config.JSON(w, http.StatusNotFound, map[string]string{"error": "avaliação não encontrada"})
	case errors.Is(err, ErrInvalidKind), errors.Is(err, ErrInvalidQuestion):
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		config.JSON(w, http.StatusInternalServerError, map[string]string{"error": "erro interno"})
	}
}

func parseIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// GetPending godoc
// @Summary Lista as avaliações pendentes do usuário autenticado
// @Tags quizzes
// @Produce json
// @Success 200 {array} quiz.PendingEntry
// @Router /quizzes/pending [get]
func (h *Handler) GetPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.service.GetPendingQuizzes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if pending == nil {
		pending = []PendingEntry{}
	}
	config.JSON(w, http.StatusOK, pending)
}

// CanTakeFinal godoc
// @Summary Indica se o questionário final está liberado
// @Tags quizzes
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /quizzes/can-take-final [get]
func (h *Handler) CanTakeFinal(w http.ResponseWriter, r *http.Request) {
	ok, err := h.service.CanTakeFinalQuiz(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]bool{"canTake": ok})
}

// SubmitAttempt godoc
// @Summary Registra uma tentativa de avaliação
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "ID da avaliação"
// @Param attempt body quiz.SubmitAttemptDTO true "Respostas"
// @Success 201 {object} quiz.Attempt
// @Router /quizzes/{id}/attempts [post]
func (h *Handler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}

	var dto SubmitAttemptDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "corpo inválido"})
		return
	}

	attempt, err := h.service.RecordAttempt(r.Context(), id, dto)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, attempt)
}

func (h *Handler) ListMyAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.service.ListMyAttempts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if attempts == nil {
		attempts = []*Attempt{}
	}
	config.JSON(w, http.StatusOK, attempts)
}

// GetResults godoc
// @Summary Visão de resultados do time
// @Tags quizzes
// @Produce json
// @Success 200 {object} quiz.ResultsView
// @Router /quizzes/results [get]
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.BuildTeamResultsView(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

// ExportResults godoc
// @Summary Exporta os resultados do time em CSV
// @Tags quizzes
// @Produce text/csv
// @Success 200 {string} string
// @Router /quizzes/results/export [get]
func (h *Handler) ExportResults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="resultados.csv"`)
	if err := h.service.ExportResultsCSV(r.Context(), w); err != nil {
		writeError(w, err)
		return
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "corpo inválido"})
		return
	}

	q, err := h.service.Create(r.Context(), dto)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}

	q, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "id inválido"})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
