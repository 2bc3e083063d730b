package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/internal/service/ai"
	"github.com/sukarame/si-karame/backend/pkg/logger"
)

var (
	ErrNotConfigured = errors.New("ai credential not configured")
	ErrBackend       = errors.New("ai backend failure")
	ErrEmptyReply    = errors.New("ai backend returned no text")
)

// User-facing replies substituted for failed turns.
const (
	MessageNotConfigured = "Maaf, kunci API (API Key) belum dikonfigurasi. Mohon hubungi administrator."
	MessageEmptyReply    = "Maaf, saya tidak dapat memproses pesan tersebut saat ini."
	MessageUnavailable   = "Maaf, terjadi kesalahan koneksi atau sistem sedang sibuk. Silakan coba lagi nanti."
)

// Manager owns one conversation's session with the generative backend.
// The session is created lazily on the first turn and lives as long as
// the Manager.
type Manager struct {
	backend ai.Backend
	cfg     ai.SessionConfig
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.Mutex
	session ai.Session
}

// Option customises a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger.OrNop(l)
	}
}

// WithTimeout bounds every backend call. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.timeout = d
	}
}

// NewManager binds a Manager to backend with a fixed session configuration.
func NewManager(backend ai.Backend, cfg ai.SessionConfig, opts ...Option) *Manager {
	m := &Manager{
		backend: backend,
		cfg:     cfg,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(zap.String("component", "chat"), zap.String("backend", backend.Name()))
	return m
}

// InitializeSession opens a fresh backend session. An existing session is
// replaced and its context is lost.
func (m *Manager) InitializeSession(ctx context.Context) error {
	if !m.backend.Configured() {
		return ErrNotConfigured
	}

	session, err := m.backend.StartSession(ctx, m.cfg)
	if err != nil {
		return fmt.Errorf("%w: start session: %w", ErrBackend, err)
	}

	m.mu.Lock()
	replaced := m.session != nil
	m.session = session
	m.mu.Unlock()

	if replaced {
		m.logger.Warn("session re-initialised, previous conversation context discarded")
	}
	return nil
}

// Active reports whether a backend session exists.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// Send performs one turn and always returns text for the user: the reply,
// or a fixed apology when the turn failed.
func (m *Manager) Send(ctx context.Context, text string) string {
	reply, err := m.Exchange(ctx, text)
	if err == nil {
		return reply
	}

	switch {
	case errors.Is(err, ErrNotConfigured):
		m.logger.Warn("turn refused, credential missing")
		return MessageNotConfigured
	case errors.Is(err, ErrEmptyReply):
		m.logger.Warn("backend returned empty reply")
		return MessageEmptyReply
	default:
		m.logger.Error("backend call failed", zap.Error(err))
		return MessageUnavailable
	}
}

// Exchange performs one turn and reports failures as ErrNotConfigured,
// ErrBackend or ErrEmptyReply. It makes at most one backend call and
// never retries.
func (m *Manager) Exchange(ctx context.Context, text string) (reply string, err error) {
	if !m.backend.Configured() {
		return "", ErrNotConfigured
	}

	defer func() {
		if r := recover(); r != nil {
			reply, err = "", fmt.Errorf("%w: panic: %v", ErrBackend, r)
		}
	}()

	session, err := m.ensureSession(ctx)
	if err != nil {
		return "", err
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	started := time.Now()
	reply, err = session.Send(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackend, err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", ErrEmptyReply
	}

	m.logger.Debug("reply received", zap.Int("length", len(reply)), zap.Duration("elapsed", time.Since(started)))
	return reply, nil
}

func (m *Manager) ensureSession(ctx context.Context) (ai.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return m.session, nil
	}

	session, err := m.backend.StartSession(ctx, m.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: start session: %w", ErrBackend, err)
	}
	m.session = session
	return session, nil
}
