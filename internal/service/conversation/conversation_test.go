package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sukarame/si-karame/backend/internal/model/chat"
	"github.com/sukarame/si-karame/backend/internal/model/knowledge"
	"github.com/sukarame/si-karame/backend/internal/service/ai"
	"github.com/sukarame/si-karame/backend/internal/service/ai/aitest"
	chatservice "github.com/sukarame/si-karame/backend/internal/service/chat"
)

func TestMain(m *testing.M) {
	// genai's transport imports opencensus, whose view worker runs for the
	// life of the process.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

var welcome = knowledge.Seed().Assistant.Welcome

// gatedReplier blocks each turn until release is closed.
type gatedReplier struct {
	release chan struct{}
	reply   string
	texts   chan string
}

func newGatedReplier(reply string) *gatedReplier {
	return &gatedReplier{release: make(chan struct{}), reply: reply, texts: make(chan string, 8)}
}

func (r *gatedReplier) Send(_ context.Context, text string) string {
	r.texts <- text
	<-r.release
	return r.reply
}

func newManagedConversation(backend *aitest.Backend) *Conversation {
	mgr := chatservice.NewManager(backend, ai.SessionConfig{SystemInstruction: "persona", Temperature: 0.7})
	return New(mgr, welcome)
}

func TestInitialState(t *testing.T) {
	conv := New(newGatedReplier("unused"), welcome)

	msgs := conv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, chat.SenderBot, msgs[0].Sender)
	assert.Equal(t, welcome, msgs[0].Text)
	assert.NotEmpty(t, msgs[0].ID)
	assert.False(t, conv.IsLoading())
	assert.True(t, conv.ShowIntro())
	assert.True(t, conv.ShowSuggestions())
}

func TestSubmitAppendsUserMessageSynchronously(t *testing.T) {
	replier := newGatedReplier("balasan")
	conv := New(replier, welcome)
	conv.SetDraft("Berapa harga snorkeling?")

	require.True(t, conv.Submit("Berapa harga snorkeling?"))

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.SenderUser, msgs[1].Sender)
	assert.Equal(t, "Berapa harga snorkeling?", msgs[1].Text)
	assert.True(t, conv.IsLoading())
	assert.Empty(t, conv.Draft(), "draft is cleared on submit")
	assert.False(t, conv.ShowIntro())
	assert.False(t, conv.ShowSuggestions(), "suggestions hidden while loading")

	assert.Equal(t, "Berapa harga snorkeling?", <-replier.texts)
	close(replier.release)
	conv.Wait()
}

func TestSubmitRejectsBlankInput(t *testing.T) {
	conv := New(newGatedReplier("unused"), welcome)
	conv.SetDraft("  ")

	for _, text := range []string{"", " ", "\t\n", "  "} {
		assert.False(t, conv.Submit(text), "%q", text)
	}

	assert.Len(t, conv.Messages(), 1)
	assert.False(t, conv.IsLoading())
	assert.Equal(t, "  ", conv.Draft())
}

func TestSubmitRejectedWhileLoading(t *testing.T) {
	replier := newGatedReplier("balasan")
	conv := New(replier, welcome)

	require.True(t, conv.Submit("pertama"))
	<-replier.texts
	before := conv.Snapshot()

	for _, text := range []string{"kedua", "", "pertama"} {
		assert.False(t, conv.Submit(text))
	}

	after := conv.Snapshot()
	assert.Equal(t, before, after)
	assert.True(t, after.Loading)

	close(replier.release)
	conv.Wait()
	assert.Empty(t, replier.texts, "refused submissions never reach the replier")
}

func TestRoundTripEndsWithBotMessage(t *testing.T) {
	conv := newManagedConversation(aitest.New(aitest.Reply{Text: "Rp 50.000"}))

	require.True(t, conv.Submit("Berapa harga snorkeling?"))
	conv.Wait()

	msgs := conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, welcome, msgs[0].Text)
	assert.Equal(t, chat.SenderUser, msgs[1].Sender)
	assert.Equal(t, "Berapa harga snorkeling?", msgs[1].Text)
	assert.Equal(t, chat.SenderBot, msgs[2].Sender)
	assert.Equal(t, "Rp 50.000", msgs[2].Text)
	assert.False(t, conv.IsLoading())
	assert.False(t, conv.ShowSuggestions())
}

func TestBackendFailureBecomesBotMessage(t *testing.T) {
	conv := newManagedConversation(aitest.New(aitest.Reply{Err: errors.New("connection reset")}))

	require.True(t, conv.Submit("halo"))
	conv.Wait()

	msgs := conv.Messages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, chat.SenderBot, last.Sender)
	assert.Equal(t, "Maaf, terjadi kesalahan koneksi atau sistem sedang sibuk. Silakan coba lagi nanti.", last.Text)
	assert.False(t, conv.IsLoading())
}

func TestMissingCredentialBecomesBotMessage(t *testing.T) {
	backend := aitest.New(aitest.Reply{Text: "never"})
	backend.Unconfigured = true
	conv := newManagedConversation(backend)

	require.True(t, conv.Submit("halo"))
	conv.Wait()

	msgs := conv.Messages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, chat.SenderBot, last.Sender)
	assert.Equal(t, chatservice.MessageNotConfigured, last.Text)
	assert.Empty(t, backend.Sends())
	assert.False(t, conv.IsLoading())
}

func TestTurnsStayOrdered(t *testing.T) {
	backend := aitest.New(aitest.Reply{Text: "satu"}, aitest.Reply{Text: "dua"}, aitest.Reply{Text: "tiga"})
	conv := newManagedConversation(backend)

	for _, q := range []string{"q1", "q2", "q3"} {
		require.True(t, conv.Submit(q))
		conv.Wait()
	}

	var texts []string
	ids := map[string]bool{}
	for _, m := range conv.Messages()[1:] {
		texts = append(texts, string(m.Sender)+":"+m.Text)
		ids[m.ID] = true
	}
	assert.Equal(t, []string{"user:q1", "bot:satu", "user:q2", "bot:dua", "user:q3", "bot:tiga"}, texts)
	assert.Len(t, ids, 6, "ids are unique")
}

func TestSubscribeReceivesEvents(t *testing.T) {
	conv := newManagedConversation(aitest.New(aitest.Reply{Text: "Rp 50.000"}))
	events, cancel := conv.Subscribe()
	defer cancel()

	require.True(t, conv.Submit("harga?"))
	conv.Wait()

	var got []Event
	for i := 0; i < 4; i++ {
		select {
		case evt := <-events:
			got = append(got, evt)
		case <-time.After(time.Second):
			t.Fatalf("timed out after %d events", i)
		}
	}

	require.Equal(t, EventMessage, got[0].Type)
	assert.Equal(t, "harga?", got[0].Message.Text)
	assert.Equal(t, Event{Type: EventLoading, Loading: true}, got[1])
	require.Equal(t, EventMessage, got[2].Type)
	assert.Equal(t, "Rp 50.000", got[2].Message.Text)
	assert.Equal(t, Event{Type: EventLoading, Loading: false}, got[3])
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	conv := New(newGatedReplier("unused"), welcome)
	events, cancel := conv.Subscribe()
	cancel()
	cancel()

	_, ok := <-events
	assert.False(t, ok)
}

func TestCloseEndsSubscriptionsAndSubmissions(t *testing.T) {
	conv := New(newGatedReplier("unused"), welcome)
	events, cancel := conv.Subscribe()
	defer cancel()

	conv.Close()

	_, ok := <-events
	assert.False(t, ok)
	assert.False(t, conv.Submit("halo"))

	late, lateCancel := conv.Subscribe()
	defer lateCancel()
	_, ok = <-late
	assert.False(t, ok)
}

func TestTimestampsUseClock(t *testing.T) {
	fixed := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)
	conv := New(newGatedReplier("unused"), welcome, WithClock(func() time.Time { return fixed }))

	assert.Equal(t, fixed, conv.Messages()[0].Timestamp)
	assert.Equal(t, fixed, conv.LastActive())
}

func TestSubscribeWithSnapshotStartsAfterSnapshot(t *testing.T) {
	replier := newGatedReplier("balasan")
	conv := New(replier, welcome)
	require.True(t, conv.Submit("pertama"))
	<-replier.texts

	snap, events, cancel := conv.SubscribeWithSnapshot()
	defer cancel()
	require.Len(t, snap.Messages, 2)
	assert.True(t, snap.Loading)

	close(replier.release)
	conv.Wait()

	var got []Event
	for i := 0; i < 2; i++ {
		select {
		case evt := <-events:
			got = append(got, evt)
		case <-time.After(time.Second):
			t.Fatalf("timed out after %d events", i)
		}
	}
	require.Equal(t, EventMessage, got[0].Type)
	assert.Equal(t, "balasan", got[0].Message.Text, "messages in the snapshot are not replayed")
	assert.Equal(t, Event{Type: EventLoading, Loading: false}, got[1])

	select {
	case evt := <-events:
		t.Fatalf("unexpected event %+v", evt)
	default:
	}
}

func TestCloseIfIdle(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	now := start
	replier := newGatedReplier("balasan")
	conv := New(replier, welcome, WithClock(func() time.Time { return now }))

	assert.False(t, conv.closeIfIdle(start.Add(-time.Minute)), "recently active")

	now = start.Add(time.Hour)
	require.True(t, conv.Submit("halo"))
	<-replier.texts
	assert.False(t, conv.closeIfIdle(now.Add(time.Minute)), "turn in flight")

	close(replier.release)
	conv.Wait()
	assert.True(t, conv.closeIfIdle(now.Add(time.Minute)))
	assert.False(t, conv.Submit("lagi"), "closed conversations refuse turns")
	assert.True(t, conv.closeIfIdle(now), "already closed")
}
