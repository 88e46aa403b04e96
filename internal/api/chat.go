package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/adarshkumar7463/army-chatbot/internal/chatbot"
	"github.com/adarshkumar7463/army-chatbot/internal/log"
	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

// maxChatBodySize caps the chat request body at 1 MB.
const maxChatBodySize = 1 << 20

// StatsStore is the read surface the stats endpoint needs. Both record
// store implementations satisfy it.
type StatsStore interface {
	CountOfficers(ctx context.Context, f records.OfficerFilter) (int, error)
	CountAwards(ctx context.Context, name string) (int, error)
	CountEducation(ctx context.Context) (int, error)
}

// ChatHandler handles the chat and stats endpoints.
type ChatHandler struct {
	engine *chatbot.Engine
	stats  StatsStore
	logger log.Logger
}

// NewChatHandler creates a chat handler around the query engine.
func NewChatHandler(engine *chatbot.Engine, stats StatsStore, logger log.Logger) *ChatHandler {
	return &ChatHandler{engine: engine, stats: stats, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/chat", h.handleChat)
	mux.HandleFunc("GET /api/v1/stats", h.handleStats)
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply payload. Reply is plain text, or an HTML
// fragment when the query requested an export.
type ChatResponse struct {
	Reply string `json:"reply"`
}

func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(h.logger, w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	reply, err := h.engine.HandleQuery(r.Context(), req.Message)
	if err != nil {
		// Backend failure. The detail stays in the logs.
		h.logger.Error("query handling failed", "error", err)
		writeError(h.logger, w, http.StatusInternalServerError,
			"internal_error", "error processing request")
		return
	}

	writeJSON(h.logger, w, http.StatusOK, ChatResponse{Reply: reply})
}

// StatsResponse is the payload of GET /api/v1/stats.
type StatsResponse struct {
	Officers  int `json:"officers"`
	Awards    int `json:"awards"`
	Education int `json:"education"`
}

func (h *ChatHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	officers, err := h.stats.CountOfficers(ctx, records.OfficerFilter{})
	if err != nil {
		h.statsError(w, err)
		return
	}
	awards, err := h.stats.CountAwards(ctx, "")
	if err != nil {
		h.statsError(w, err)
		return
	}
	education, err := h.stats.CountEducation(ctx)
	if err != nil {
		h.statsError(w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, StatsResponse{
		Officers:  officers,
		Awards:    awards,
		Education: education,
	})
}

func (h *ChatHandler) statsError(w http.ResponseWriter, err error) {
	h.logger.Error("stats query failed", "error", err)
	writeError(h.logger, w, http.StatusInternalServerError,
		"internal_error", "error processing request")
}
