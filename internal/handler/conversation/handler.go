package conversation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/internal/service/conversation"
	"github.com/sukarame/si-karame/backend/pkg/logger"
	"github.com/sukarame/si-karame/backend/pkg/utils"
)

// Handler exposes visitor conversations over REST, SSE and websocket.
type Handler struct {
	registry *conversation.Registry
	present  presenter
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates a conversation handler. renderer may be nil, in which case
// replies are sent as plain text only.
func New(registry *conversation.Registry, suggestions []string, renderer HTMLRenderer, l *zap.Logger) *Handler {
	l = logger.OrNop(l).With(zap.String("component", "http"))
	return &Handler{
		registry: registry,
		present:  presenter{renderer: renderer, suggestions: suggestions, logger: l},
		logger:   l,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the conversation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/conversations", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Route("/{conversationID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Post("/messages", h.handleSubmit)
			r.Get("/events", h.handleEvents)
			r.Get("/ws", h.handleWebSocket)
		})
	})
}

type submitRequest struct {
	Text string `json:"text"`
}

type submitResponse struct {
	Accepted bool `json:"accepted"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	conv, err := h.registry.Create(r.Context())
	if err != nil {
		h.logger.Error("create conversation failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "could not start conversation")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, h.present.snapshot(conv.Snapshot()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.present.snapshot(conv.Snapshot()))
}

// handleSubmit admits one user turn. A blank or concurrent submission is
// refused silently with accepted=false, mirroring the chat widget.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !conv.Submit(payload.Text) {
		utils.RespondJSON(w, http.StatusOK, submitResponse{Accepted: false})
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, submitResponse{Accepted: true})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*conversation.Conversation, bool) {
	conv, err := h.registry.Get(chi.URLParam(r, "conversationID"))
	if errors.Is(err, conversation.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return conv, true
}
