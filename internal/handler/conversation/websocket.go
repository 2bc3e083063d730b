package conversation

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/internal/service/conversation"
)

const (
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 54 * time.Second
	wsWriteWait  = 10 * time.Second
)

type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId"`
	Data           any    `json:"data,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

// wsConn serialises writes; gorilla allows only one concurrent writer.
type wsConn struct {
	conn   *websocket.Conn
	convID string
	mu     sync.Mutex
}

func (c *wsConn) send(frameType string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteJSON(outgoingFrame{
		Type:           frameType,
		ConversationID: c.convID,
		Data:           data,
		Timestamp:      time.Now().Unix(),
	})
}

func (c *wsConn) sendError(message string) error {
	return c.send("error", map[string]string{"message": message})
}

// handleWebSocket pushes the snapshot and then every conversation event.
// Clients submit turns with {"type":"submit","text":"..."} and receive an
// "ack" frame telling whether the turn was admitted.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.logger.With(zap.String("conversation", conv.ID()))
	log.Debug("websocket connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ws := &wsConn{conn: conn, convID: conv.ID()}

	snap, events, unsubscribe := conv.SubscribeWithSnapshot()
	defer unsubscribe()

	if err := ws.send("snapshot", h.present.snapshot(snap)); err != nil {
		return
	}

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.forwardEvents(ctx, ws, events)
		// Closing the socket unblocks the read loop when the conversation ends.
		conn.Close()
	}()
	go func() {
		defer wg.Done()
		pingLoop(ctx, conn)
	}()

	h.readLoop(conv, ws, log)
	cancel()
	wg.Wait()
	log.Debug("websocket closed")
}

func (h *Handler) readLoop(conv *conversation.Conversation, ws *wsConn, log *zap.Logger) {
	for {
		var frame inboundFrame
		if err := ws.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("websocket read error", zap.Error(err))
			}
			return
		}
		ws.conn.SetReadDeadline(time.Now().Add(wsPongWait))

		switch frame.Type {
		case "submit":
			accepted := conv.Submit(frame.Text)
			if err := ws.send("ack", submitResponse{Accepted: accepted}); err != nil {
				return
			}
		case "draft":
			conv.SetDraft(frame.Text)
		default:
			if err := ws.sendError("unsupported frame type"); err != nil {
				return
			}
		}
	}
}

func (h *Handler) forwardEvents(ctx context.Context, ws *wsConn, events <-chan conversation.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, open := <-events:
			if !open {
				return
			}
			name, data := h.present.event(evt)
			if err := ws.send(name, data); err != nil {
				return
			}
		}
	}
}

func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
