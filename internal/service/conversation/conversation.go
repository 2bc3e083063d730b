package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/internal/model/chat"
	"github.com/sukarame/si-karame/backend/pkg/logger"
)

const subscriberBuffer = 32

// Replier answers one user turn. Implementations must always return text.
type Replier interface {
	Send(ctx context.Context, text string) string
}

// EventType names a change pushed to subscribers.
type EventType string

const (
	EventMessage EventType = "message"
	EventLoading EventType = "loading"
)

// Event is a single change to the conversation.
type Event struct {
	Type    EventType     `json:"type"`
	Message *chat.Message `json:"message,omitempty"`
	Loading bool          `json:"loading"`
}

// Snapshot is a consistent copy of the conversation state.
type Snapshot struct {
	ID              string         `json:"id"`
	Messages        []chat.Message `json:"messages"`
	Loading         bool           `json:"loading"`
	ShowIntro       bool           `json:"showIntro"`
	ShowSuggestions bool           `json:"showSuggestions"`
}

// Conversation is the append-only message thread of one visitor plus the
// loading flag that admits at most one outstanding turn.
type Conversation struct {
	id      string
	replier Replier
	logger  *zap.Logger
	now     func() time.Time

	mu          sync.Mutex
	messages    []chat.Message
	loading     bool
	draft       string
	lastActive  time.Time
	subscribers map[int]chan Event
	nextSub     int
	closed      bool

	inflight sync.WaitGroup
}

// Option customises a Conversation.
type Option func(*Conversation)

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Conversation) {
		c.logger = logger.OrNop(l)
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) {
		c.now = now
	}
}

// New starts a conversation whose first message is the bot's welcome.
func New(replier Replier, welcome string, opts ...Option) *Conversation {
	c := &Conversation{
		id:          uuid.NewString(),
		replier:     replier,
		logger:      zap.NewNop(),
		now:         time.Now,
		subscribers: make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("component", "conversation"), zap.String("conversation", c.id))

	c.messages = []chat.Message{c.newMessage(welcome, chat.SenderBot)}
	c.lastActive = c.now()
	return c
}

// ID returns the conversation identifier.
func (c *Conversation) ID() string {
	return c.id
}

// Submit admits text as the next user turn. It returns false without any
// change when text is blank or a turn is already in flight. Otherwise the
// user message is appended and loading set before Submit returns; the
// reply is appended asynchronously.
func (c *Conversation) Submit(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	c.mu.Lock()
	if c.loading || c.closed {
		c.mu.Unlock()
		return false
	}

	msg := c.newMessage(text, chat.SenderUser)
	c.messages = append(c.messages, msg)
	c.draft = ""
	c.loading = true
	c.lastActive = msg.Timestamp
	c.inflight.Add(1)
	c.publishLocked(Event{Type: EventMessage, Message: &msg, Loading: true})
	c.publishLocked(Event{Type: EventLoading, Loading: true})
	c.mu.Unlock()

	go c.dispatch(text)
	return true
}

func (c *Conversation) dispatch(text string) {
	defer c.inflight.Done()

	// Turns outlive the request that submitted them.
	reply := c.replier.Send(context.Background(), text)

	c.mu.Lock()
	defer c.mu.Unlock()

	msg := c.newMessage(reply, chat.SenderBot)
	c.messages = append(c.messages, msg)
	c.loading = false
	c.lastActive = msg.Timestamp
	c.publishLocked(Event{Type: EventMessage, Message: &msg})
	c.publishLocked(Event{Type: EventLoading})
}

// Wait blocks until the in-flight turn, if any, has completed.
func (c *Conversation) Wait() {
	c.inflight.Wait()
}

// Messages returns a copy of the thread in insertion order.
func (c *Conversation) Messages() []chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]chat.Message(nil), c.messages...)
}

// IsLoading reports whether a turn is in flight.
func (c *Conversation) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ShowIntro reports whether the introductory panel should be shown, which
// is only before the first exchange.
func (c *Conversation) ShowIntro() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return showIntro(len(c.messages))
}

// ShowSuggestions reports whether suggested questions should be offered.
func (c *Conversation) ShowSuggestions() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return showSuggestions(len(c.messages), c.loading)
}

// Snapshot returns the full state under a single lock.
func (c *Conversation) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Conversation) snapshotLocked() Snapshot {
	return Snapshot{
		ID:              c.id,
		Messages:        append([]chat.Message(nil), c.messages...),
		Loading:         c.loading,
		ShowIntro:       showIntro(len(c.messages)),
		ShowSuggestions: showSuggestions(len(c.messages), c.loading),
	}
}

// SetDraft stores the text currently typed but not yet submitted.
func (c *Conversation) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Draft returns the pending input text.
func (c *Conversation) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// LastActive returns when the conversation last changed.
func (c *Conversation) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Subscribe returns a channel of future events and a function that ends
// the subscription. A subscriber that falls behind by more than the
// channel buffer is dropped and its channel closed.
func (c *Conversation) Subscribe() (<-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subscribeLocked()
}

// SubscribeWithSnapshot is Subscribe plus the state the first event
// applies to. Both are taken under one lock, so no change is missed or
// delivered twice.
func (c *Conversation) SubscribeWithSnapshot() (Snapshot, <-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	events, cancel := c.subscribeLocked()
	return c.snapshotLocked(), events, cancel
}

func (c *Conversation) subscribeLocked() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subscribers[id]; ok {
				delete(c.subscribers, id)
				close(sub)
			}
		})
	}
}

// Close ends every subscription and refuses further submissions. A turn
// already in flight still completes.
func (c *Conversation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

// closeIfIdle closes the conversation when no turn is in flight and it has
// not changed since cutoff. It reports whether the conversation is closed.
// A concurrent Submit is either refused or keeps the conversation open.
func (c *Conversation) closeIfIdle(cutoff time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	if c.loading || c.lastActive.After(cutoff) {
		return false
	}
	c.closeLocked()
	return true
}

func (c *Conversation) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subscribers {
		delete(c.subscribers, id)
		close(ch)
	}
}

func (c *Conversation) publishLocked(evt Event) {
	for id, ch := range c.subscribers {
		select {
		case ch <- evt:
		default:
			c.logger.Warn("dropping slow subscriber", zap.Int("subscriber", id))
			delete(c.subscribers, id)
			close(ch)
		}
	}
}

func (c *Conversation) newMessage(text string, sender chat.Sender) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: c.now(),
	}
}

func showIntro(count int) bool {
	return count == 1
}

func showSuggestions(count int, loading bool) bool {
	return count < 3 && !loading
}
