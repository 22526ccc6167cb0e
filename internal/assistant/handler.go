package assistant

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rkive-app/rkive-api/internal/config"
)

type Handler struct {
	service AssistantService
}

func NewHandler(service AssistantService) *Handler {
	return &Handler{service: service}
}

type chatRequest struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrForbidden) {
		config.JSON(w, http.StatusForbidden, map[string]string{"error": "acesso negado"})
		return
	}
	config.JSON(w, http.StatusInternalServerError, map[string]string{"error": "erro interno"})
}

// Chat godoc
// @Summary Envia uma mensagem ao assistente
// @Tags assistant
// @Accept json
// @Produce json
// @Param message body assistant.chatRequest true "Mensagem"
// @Success 200 {array} assistant.Message
// @Router /assistant/chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "corpo inválido"})
		return
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "mensagem vazia"})
		return
	}

	messages, err := h.service.SendMessage(r.Context(), text)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, messages)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.History(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []*Message{}
	}
	config.JSON(w, http.StatusOK, messages)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
