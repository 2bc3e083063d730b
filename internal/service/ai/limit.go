package ai

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Limit caps the number of Send calls in flight across every session of
// backend. Callers wait for a slot until their context is done.
func Limit(backend Backend, maxConcurrent int) Backend {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &limitedBackend{Backend: backend, sem: semaphore.NewWeighted(int64(maxConcurrent))}
}

type limitedBackend struct {
	Backend
	sem *semaphore.Weighted
}

func (b *limitedBackend) StartSession(ctx context.Context, cfg SessionConfig) (Session, error) {
	session, err := b.Backend.StartSession(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &limitedSession{Session: session, sem: b.sem}, nil
}

type limitedSession struct {
	Session
	sem *semaphore.Weighted
}

func (s *limitedSession) Send(ctx context.Context, text string) (string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("waiting for backend slot: %w", err)
	}
	defer s.sem.Release(1)
	return s.Session.Send(ctx, text)
}
