package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"livin/internal/model"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memStore struct {
	mu       sync.Mutex
	messages []model.Message
	failWith error
}

func (s *memStore) Insert(_ context.Context, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}
	msg.ID = primitive.NewObjectID()
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *memStore) all() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.messages...)
}

func decodeEnvelope(t *testing.T, payload []byte) (string, model.Message) {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(payload, &env))

	var msg model.Message
	if env.Event == EventReceiveMessage {
		require.NoError(t, json.Unmarshal(env.Data, &msg))
	}
	return env.Event, msg
}

func TestSubmit_PersistsBeforeDelivery(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	hub := NewHub()
	svc := NewService(store, hub)

	// Recipient offline: persistence must still succeed.
	sender := &fakeTarget{}
	hub.Register("alice", sender)

	msg, err := svc.Submit(context.Background(), "alice", "bob", "hi")

	req.NoError(err)
	req.False(msg.ID.IsZero())
	req.Len(store.all(), 1)
	req.Equal("alice", store.all()[0].Sender)
	req.Equal("bob", store.all()[0].Receiver)

	// Self-echo reaches the sender even though bob is offline.
	payloads := sender.received()
	req.Len(payloads, 1)
	event, echoed := decodeEnvelope(t, payloads[0])
	req.Equal(EventReceiveMessage, event)
	req.Equal("hi", echoed.Content)
}

func TestSubmit_FanOutToBothParticipants(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	hub := NewHub()
	svc := NewService(store, hub)

	alicePhone := &fakeTarget{}
	aliceLaptop := &fakeTarget{}
	bobPhone := &fakeTarget{}
	hub.Register("alice", alicePhone)
	hub.Register("alice", aliceLaptop)
	hub.Register("bob", bobPhone)

	_, err := svc.Submit(context.Background(), "alice", "bob", "hello bob")
	req.NoError(err)

	for _, target := range []*fakeTarget{alicePhone, aliceLaptop, bobPhone} {
		payloads := target.received()
		req.Len(payloads, 1)
		event, msg := decodeEnvelope(t, payloads[0])
		req.Equal(EventReceiveMessage, event)
		req.Equal("hello bob", msg.Content)
	}
}

func TestSubmit_PersistFailureDeliversNothing(t *testing.T) {
	req := require.New(t)
	store := &memStore{failWith: errors.New("store unreachable")}
	hub := NewHub()
	svc := NewService(store, hub)

	aliceConn := &fakeTarget{}
	bobConn := &fakeTarget{}
	hub.Register("alice", aliceConn)
	hub.Register("bob", bobConn)

	_, err := svc.Submit(context.Background(), "alice", "bob", "hi")

	req.Error(err)
	req.Empty(store.all())
	req.Empty(aliceConn.received())
	req.Empty(bobConn.received())
}

func TestSubmit_RejectsEmptyInput(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	svc := NewService(store, NewHub())

	_, err := svc.Submit(context.Background(), "alice", "", "hi")
	req.ErrorIs(err, ErrEmptyRecipient)

	_, err = svc.Submit(context.Background(), "alice", "bob", "")
	req.ErrorIs(err, ErrEmptyContent)

	req.Empty(store.all())
}

func TestSubmit_SequentialOrderPreserved(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	svc := NewService(store, NewHub())

	base := time.Now()
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}

	for _, content := range []string{"1", "2", "3"} {
		_, err := svc.Submit(context.Background(), "alice", "bob", content)
		req.NoError(err)
	}

	persisted := store.all()
	req.Len(persisted, 3)
	for i, want := range []string{"1", "2", "3"} {
		req.Equal(want, persisted[i].Content)
		if i > 0 {
			req.False(persisted[i].Timestamp.Before(persisted[i-1].Timestamp))
		}
	}
}

func TestSubmit_ReconnectBehavesLikeFreshConnection(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	hub := NewHub()
	svc := NewService(store, hub)

	first := &fakeTarget{}
	hub.Register("alice", first)
	hub.Deregister("alice", first)

	second := &fakeTarget{}
	hub.Register("alice", second)

	_, err := svc.Submit(context.Background(), "alice", "bob", "back again")
	req.NoError(err)

	req.Empty(first.received())
	req.Len(second.received(), 1)
}
