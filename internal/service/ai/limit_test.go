package ai

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingBackend struct {
	release  chan struct{}
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (b *blockingBackend) Name() string     { return "blocking" }
func (b *blockingBackend) Configured() bool { return true }

func (b *blockingBackend) StartSession(context.Context, SessionConfig) (Session, error) {
	return b, nil
}

func (b *blockingBackend) Send(ctx context.Context, text string) (string, error) {
	n := b.inFlight.Add(1)
	defer b.inFlight.Add(-1)
	for {
		peak := b.peak.Load()
		if n <= peak || b.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	select {
	case <-b.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return "ok:" + text, nil
}

func TestLimitCapsConcurrentSends(t *testing.T) {
	inner := &blockingBackend{release: make(chan struct{})}
	backend := Limit(inner, 2)
	assert.Equal(t, "blocking", backend.Name())
	assert.True(t, backend.Configured())

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		session, err := backend.StartSession(ctx, SessionConfig{})
		require.NoError(t, err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = session.Send(ctx, "x")
		}()
	}

	require.Eventually(t, func() bool { return inner.inFlight.Load() == 2 }, time.Second, 5*time.Millisecond)
	close(inner.release)
	wg.Wait()

	assert.Equal(t, int32(2), inner.peak.Load())
}

func TestLimitHonoursContext(t *testing.T) {
	inner := &blockingBackend{release: make(chan struct{})}
	backend := Limit(inner, 1)

	holder, err := backend.StartSession(context.Background(), SessionConfig{})
	require.NoError(t, err)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = holder.Send(context.Background(), "hold")
	}()
	require.Eventually(t, func() bool { return inner.inFlight.Load() == 1 }, time.Second, 5*time.Millisecond)

	waiter, err := backend.StartSession(context.Background(), SessionConfig{})
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = waiter.Send(ctx, "wait")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(inner.release)
	<-done
}

func TestGeminiBackendWithoutKey(t *testing.T) {
	backend, err := NewGeminiBackend(context.Background(), "", "", "")
	require.NoError(t, err)
	assert.False(t, backend.Configured())
	assert.Equal(t, "gemini:gemini-2.5-flash", backend.Name())

	_, err = backend.StartSession(context.Background(), SessionConfig{})
	require.ErrorIs(t, err, ErrUnavailable)
}
