package conversation

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/pkg/utils"
)

const keepAliveInterval = 15 * time.Second

// handleEvents streams the snapshot followed by every conversation event as
// Server-Sent Events until the client leaves or the conversation is evicted.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	snap, events, cancel := conv.SubscribeWithSnapshot()
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	log := h.logger.With(zap.String("conversation", conv.ID()))
	log.Debug("event stream opened")
	defer log.Debug("event stream closed")

	if err := utils.SendSSEEvent(w, flusher, "snapshot", h.present.snapshot(snap)); err != nil {
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "keep-alive"); err != nil {
				return
			}
		case evt, open := <-events:
			if !open {
				return
			}
			name, data := h.present.event(evt)
			if err := utils.SendSSEEvent(w, flusher, name, data); err != nil {
				log.Debug("event stream write failed", zap.Error(err))
				return
			}
		}
	}
}
