package ai

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by backends that were built without a usable credential.
var ErrUnavailable = errors.New("ai backend unavailable")

// SessionConfig fixes the persona and sampling parameters of a session.
type SessionConfig struct {
	SystemInstruction string
	Temperature       float64
}

// Backend creates stateful chat sessions against a generative model.
type Backend interface {
	// Name identifies the provider in logs.
	Name() string
	// Configured reports whether the backend holds a credential. When it
	// returns false no other method may reach the network.
	Configured() bool
	// StartSession opens a new session. Prior sessions are unaffected.
	StartSession(ctx context.Context, cfg SessionConfig) (Session, error)
}

// Session is one ongoing exchange whose context is kept by the backend.
type Session interface {
	// Send submits the next user turn and returns the reply text, which
	// may be empty when the model produced nothing usable.
	Send(ctx context.Context, text string) (string, error)
}
