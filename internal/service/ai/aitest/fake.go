// Package aitest provides a scriptable ai.Backend for tests.
package aitest

import (
	"context"
	"sync"

	"github.com/sukarame/si-karame/backend/internal/service/ai"
)

// Reply is one scripted backend outcome.
type Reply struct {
	Text  string
	Err   error
	Panic any
}

// Backend is an in-memory ai.Backend. Every session shares the same
// script; calls are recorded for assertions.
type Backend struct {
	Unconfigured bool
	StartErr     error
	// Gate, when set, blocks each Send until a value is received or the
	// context ends.
	Gate chan struct{}

	mu       sync.Mutex
	script   []Reply
	fallback Reply
	sessions []ai.SessionConfig
	sends    []string
}

// New returns a configured backend that answers with replies in order and
// then repeats the last one.
func New(replies ...Reply) *Backend {
	b := &Backend{script: replies}
	if len(replies) > 0 {
		b.fallback = replies[len(replies)-1]
	}
	return b
}

// Name implements ai.Backend.
func (b *Backend) Name() string { return "fake" }

// Configured implements ai.Backend.
func (b *Backend) Configured() bool { return !b.Unconfigured }

// StartSession implements ai.Backend.
func (b *Backend) StartSession(_ context.Context, cfg ai.SessionConfig) (ai.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.StartErr != nil {
		return nil, b.StartErr
	}
	b.sessions = append(b.sessions, cfg)
	return &session{backend: b}, nil
}

// Sessions returns the configurations of every started session.
func (b *Backend) Sessions() []ai.SessionConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ai.SessionConfig(nil), b.sessions...)
}

// Sends returns every text passed to Send, across sessions.
func (b *Backend) Sends() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.sends...)
}

func (b *Backend) next(text string) Reply {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sends = append(b.sends, text)
	if len(b.script) == 0 {
		return b.fallback
	}
	r := b.script[0]
	b.script = b.script[1:]
	return r
}

type session struct {
	backend *Backend
}

func (s *session) Send(ctx context.Context, text string) (string, error) {
	r := s.backend.next(text)
	if gate := s.backend.Gate; gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if r.Panic != nil {
		panic(r.Panic)
	}
	return r.Text, r.Err
}
