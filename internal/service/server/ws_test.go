package server

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"livin/internal/model"
	"livin/internal/service/chat"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialChat(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "?token=" + token
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func sendEvent(t *testing.T, ws *websocket.Conn, event string, data any) {
	t.Helper()

	payload, err := chat.NewEnvelope(event, data)
	require.NoError(t, err)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, payload))
}

func readEvent(t *testing.T, ws *websocket.Conn) (string, json.RawMessage) {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)

	var env chat.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env.Event, env.Data
}

func join(t *testing.T, ws *websocket.Conn, userID string) {
	t.Helper()
	sendEvent(t, ws, chat.EventJoinRoom, &chat.JoinRoomPayload{UserID: userID})
}

func TestChatWS_RejectsMissingToken(t *testing.T) {
	s := newTestServer(&memStore{})
	ts := httptest.NewServer(s.HandleChatWS())
	defer ts.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.Error(t, err)
	require.Equal(t, 401, resp.StatusCode)
}

func TestChatWS_OfflineRecipientStillPersisted(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	s := newTestServer(store)
	ts := httptest.NewServer(s.HandleChatWS())
	defer ts.Close()

	alice := dialChat(t, ts, testToken(s, "alice"))
	join(t, alice, "alice")

	sendEvent(t, alice, chat.EventSendMessage, &chat.SendMessagePayload{
		RecipientID: "bob",
		Message:     "hi",
	})

	// Sender self-echo arrives even though bob never connected.
	event, data := readEvent(t, alice)
	req.Equal(chat.EventReceiveMessage, event)
	var msg model.Message
	req.NoError(json.Unmarshal(data, &msg))
	req.Equal("hi", msg.Content)
	req.Equal("alice", msg.Sender)

	event, _ = readEvent(t, alice)
	req.Equal(chat.EventSendMessageAck, event)

	// And bob can fetch it from history afterwards.
	history := decodeMessages(t, getConversation(t, s, "bob", "alice", ""))
	req.Len(history, 1)
	req.Equal("hi", history[0].Content)
}

func TestChatWS_FanOutToAllConnections(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	s := newTestServer(store)
	ts := httptest.NewServer(s.HandleChatWS())
	defer ts.Close()

	alicePhone := dialChat(t, ts, testToken(s, "alice"))
	aliceLaptop := dialChat(t, ts, testToken(s, "alice"))
	bob := dialChat(t, ts, testToken(s, "bob"))
	join(t, alicePhone, "alice")
	join(t, aliceLaptop, "alice")
	join(t, bob, "bob")

	// joinRoom is handled by each connection's own read loop; wait until
	// every registration landed before submitting.
	req.Eventually(func() bool {
		return s.hub.Connected("alice") && s.hub.Connected("bob")
	}, 2*time.Second, 10*time.Millisecond)

	sendEvent(t, alicePhone, chat.EventSendMessage, &chat.SendMessagePayload{
		RecipientID: "bob",
		Message:     "movie night?",
	})

	for _, ws := range []*websocket.Conn{alicePhone, aliceLaptop, bob} {
		event, data := readEvent(t, ws)
		req.Equal(chat.EventReceiveMessage, event)

		var msg model.Message
		req.NoError(json.Unmarshal(data, &msg))
		req.Equal("movie night?", msg.Content)
		req.Equal("alice", msg.Sender)
		req.Equal("bob", msg.Receiver)
	}
}

func TestChatWS_PersistFailureSurfacedToSubmitterOnly(t *testing.T) {
	req := require.New(t)
	store := &memStore{failWith: errors.New("store unreachable")}
	s := newTestServer(store)
	ts := httptest.NewServer(s.HandleChatWS())
	defer ts.Close()

	alice := dialChat(t, ts, testToken(s, "alice"))
	bob := dialChat(t, ts, testToken(s, "bob"))
	join(t, alice, "alice")
	join(t, bob, "bob")

	req.Eventually(func() bool {
		return s.hub.Connected("alice") && s.hub.Connected("bob")
	}, 2*time.Second, 10*time.Millisecond)

	sendEvent(t, alice, chat.EventSendMessage, &chat.SendMessagePayload{
		RecipientID: "bob",
		Message:     "hi",
	})

	event, _ := readEvent(t, alice)
	req.Equal(chat.EventSendMessageError, event)

	// No receiveMessage reaches anyone.
	bob.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err := bob.ReadMessage()
	req.Error(err)

	history := decodeMessages(t, getConversation(t, s, "alice", "bob", ""))
	req.Empty(history)
}

func TestChatWS_SubmitBeforeJoinRejected(t *testing.T) {
	req := require.New(t)
	s := newTestServer(&memStore{})
	ts := httptest.NewServer(s.HandleChatWS())
	defer ts.Close()

	alice := dialChat(t, ts, testToken(s, "alice"))
	sendEvent(t, alice, chat.EventSendMessage, &chat.SendMessagePayload{
		RecipientID: "bob",
		Message:     "too soon",
	})

	event, _ := readEvent(t, alice)
	req.Equal(chat.EventSendMessageError, event)
}

func TestChatWS_SpoofedSenderRejected(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	s := newTestServer(store)
	ts := httptest.NewServer(s.HandleChatWS())
	defer ts.Close()

	mallory := dialChat(t, ts, testToken(s, "mallory"))
	join(t, mallory, "mallory")

	sendEvent(t, mallory, chat.EventSendMessage, &chat.SendMessagePayload{
		SenderID:    "alice",
		RecipientID: "bob",
		Message:     "pretending",
	})

	event, _ := readEvent(t, mallory)
	req.Equal(chat.EventSendMessageError, event)

	history := decodeMessages(t, getConversation(t, s, "alice", "bob", ""))
	req.Empty(history)
}

func TestChatWS_JoinOtherUsersRoomRejected(t *testing.T) {
	req := require.New(t)
	s := newTestServer(&memStore{})
	ts := httptest.NewServer(s.HandleChatWS())
	defer ts.Close()

	mallory := dialChat(t, ts, testToken(s, "mallory"))
	join(t, mallory, "alice")

	event, _ := readEvent(t, mallory)
	req.Equal(chat.EventSendMessageError, event)
	req.False(s.hub.Connected("alice"))
}
