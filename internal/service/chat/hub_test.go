package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	mu       sync.Mutex
	payloads [][]byte
	reject   bool
}

func (t *fakeTarget) Enqueue(payload []byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.reject {
		return false
	}
	t.payloads = append(t.payloads, payload)
	return true
}

func (t *fakeTarget) received() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([][]byte(nil), t.payloads...)
}

func TestHub_SendReachesEveryDevice(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	phone := &fakeTarget{}
	laptop := &fakeTarget{}
	hub.Register("alice", phone)
	hub.Register("alice", laptop)

	delivered := hub.Send("alice", []byte("hello"))

	req.Equal(2, delivered)
	req.Len(phone.received(), 1)
	req.Len(laptop.received(), 1)
}

func TestHub_SendToUnknownUser(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	req.Equal(0, hub.Send("nobody", []byte("hello")))
}

func TestHub_DeregisterLeavesOtherDevices(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	phone := &fakeTarget{}
	laptop := &fakeTarget{}
	hub.Register("alice", phone)
	hub.Register("alice", laptop)

	hub.Deregister("alice", phone)
	delivered := hub.Send("alice", []byte("hello"))

	req.Equal(1, delivered)
	req.Empty(phone.received())
	req.Len(laptop.received(), 1)
	req.True(hub.Connected("alice"))

	hub.Deregister("alice", laptop)
	req.False(hub.Connected("alice"))
}

func TestHub_SlowTargetDoesNotBlockOthers(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	stuck := &fakeTarget{reject: true}
	healthy := &fakeTarget{}
	hub.Register("bob", stuck)
	hub.Register("bob", healthy)

	delivered := hub.Send("bob", []byte("hi"))

	req.Equal(1, delivered)
	req.Len(healthy.received(), 1)
}

func TestHub_ConcurrentRegisterSendDeregister(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", n%5)
			target := &fakeTarget{}
			hub.Register(userID, target)
			hub.Send(userID, []byte("ping"))
			hub.Deregister(userID, target)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		req.False(hub.Connected(fmt.Sprintf("user-%d", i)))
	}
}

func TestConnection_EnqueueAfterClose(t *testing.T) {
	req := require.New(t)

	conn := NewConnection(nil)
	conn.Close()
	conn.Close()

	req.False(conn.Enqueue([]byte("late")))
}
