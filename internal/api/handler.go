// Package api exposes the assistant over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zero-touch-cx/server/internal/cx/model"
	"github.com/zero-touch-cx/server/internal/cx/router"
	logx "github.com/zero-touch-cx/server/pkg/logger"
)

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Text           string `json:"text"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse pairs the rendered message with the structured envelope.
type ChatResponse struct {
	Message string              `json:"message"`
	Data    model.AgentResponse `json:"data"`
}

// Handler serves the chat API.
type Handler struct {
	router *router.Router
}

// NewHandler builds the API handler over the message router.
func NewHandler(r *router.Router) *Handler {
	return &Handler{router: r}
}

// Routes assembles the chi router with standard middleware.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Post("/chat", h.chat)
	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	resp := h.router.Respond(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, ChatResponse{
		Message: router.Render(resp),
		Data:    resp,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Component("api").Error().Err(err).Msg("response encode failed")
	}
}
