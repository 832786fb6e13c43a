package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/engine"
)

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// ExplainRequest is the body of POST /api/explain.
type ExplainRequest struct {
	SQL string `json:"sql"`
}

// SuggestResponse is the body of GET /api/suggest.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// AskHandler exposes the engine's question-answering operations.
type AskHandler struct {
	engine engine.Engine
	logger *zap.Logger
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(eng engine.Engine, logger *zap.Logger) *AskHandler {
	return &AskHandler{engine: eng, logger: logger}
}

// RegisterRoutes registers the ask handler's routes on the given mux.
func (h *AskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ask", h.Ask)
	mux.HandleFunc("POST /api/explain", h.Explain)
	mux.HandleFunc("GET /api/suggest", h.Suggest)
}

// Ask handles POST /api/ask. The engine never surfaces errors; a failed
// interpretation is still a 200 with success=false in the envelope.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "request body must be JSON with a question field")
		return
	}

	env := h.engine.Process(r.Context(), req.Question)
	if err := WriteJSON(w, http.StatusOK, env); err != nil {
		h.logger.Error("Failed to encode ask response", zap.Error(err))
	}
}

// Explain handles POST /api/explain.
func (h *AskHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "request body must be JSON with a sql field")
		return
	}

	env := h.engine.Explain(r.Context(), req.SQL)
	if err := WriteJSON(w, http.StatusOK, env); err != nil {
		h.logger.Error("Failed to encode explain response", zap.Error(err))
	}
}

// Suggest handles GET /api/suggest?q=<partial>.
func (h *AskHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	partial := r.URL.Query().Get("q")
	suggestions := h.engine.Suggest(r.Context(), partial)

	if err := WriteJSON(w, http.StatusOK, SuggestResponse{Suggestions: suggestions}); err != nil {
		h.logger.Error("Failed to encode suggest response", zap.Error(err))
	}
}
