package conversation

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/pkg/logger"
)

var ErrNotFound = errors.New("conversation not found")

// Factory builds a new conversation together with its own session manager.
type Factory func(ctx context.Context) (*Conversation, error)

// Registry keeps the live conversations of anonymous visitors in memory.
// Nothing is persisted; idle conversations are evicted by Sweep.
type Registry struct {
	factory Factory
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu    sync.RWMutex
	items map[string]*Conversation
}

// NewRegistry creates an empty registry.
func NewRegistry(factory Factory, ttl time.Duration, l *zap.Logger) *Registry {
	return &Registry{
		factory: factory,
		ttl:     ttl,
		logger:  logger.OrNop(l).With(zap.String("component", "registry")),
		now:     time.Now,
		items:   make(map[string]*Conversation),
	}
}

// Create provisions a conversation and registers it.
func (r *Registry) Create(ctx context.Context) (*Conversation, error) {
	conv, err := r.factory(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.items[conv.ID()] = conv
	r.mu.Unlock()

	r.logger.Info("conversation created", zap.String("conversation", conv.ID()))
	return conv, nil
}

// Get looks up a conversation by identifier.
func (r *Registry) Get(id string) (*Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conv, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return conv, nil
}

// Len returns the number of live conversations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Sweep evicts conversations idle for longer than the TTL. A conversation
// with a turn in flight is kept. It returns the number evicted.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var evicted []string
	for id, conv := range r.items {
		if conv.closeIfIdle(cutoff) {
			delete(r.items, id)
			evicted = append(evicted, id)
		}
	}
	r.mu.Unlock()

	for _, id := range evicted {
		r.logger.Debug("conversation evicted", zap.String("conversation", id))
	}
	return len(evicted)
}

// Run sweeps periodically until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("evicted idle conversations", zap.Int("count", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}
