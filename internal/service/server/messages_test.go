package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"livin/internal/auth"
	"livin/internal/model"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func seedConversation(t *testing.T, store *memStore, pairs [][3]string) []model.Message {
	t.Helper()

	seeded := make([]model.Message, 0, len(pairs))
	base := time.Now()
	for i, p := range pairs {
		msg := model.Message{
			Sender:    p[0],
			Receiver:  p[1],
			Content:   p[2],
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.Insert(context.Background(), &msg))
		seeded = append(seeded, msg)
	}
	return seeded
}

func getConversation(t *testing.T, s *HttpServer, asUser, counterpart, query string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/api/messages/"+counterpart+query, nil)
	r = mux.SetURLVars(r, map[string]string{"recipientId": counterpart})
	claims := &auth.Claims{UserID: asUser}
	r = r.WithContext(auth.WithClaims(r.Context(), claims))

	w := httptest.NewRecorder()
	s.HandleGetConversation()(w, r)
	return w
}

func decodeMessages(t *testing.T, w *httptest.ResponseRecorder) []model.Message {
	t.Helper()

	var body struct {
		Messages []model.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Messages
}

func TestGetConversation_OrderedAscending(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	s := newTestServer(store)

	seedConversation(t, store, [][3]string{
		{"alice", "bob", "1"},
		{"bob", "alice", "2"},
		{"alice", "carol", "not in this pair"},
		{"alice", "bob", "3"},
	})

	w := getConversation(t, s, "alice", "bob", "")
	req.Equal(http.StatusOK, w.Code)

	messages := decodeMessages(t, w)
	req.Len(messages, 3)
	for i, want := range []string{"1", "2", "3"} {
		req.Equal(want, messages[i].Content)
		if i > 0 {
			req.False(messages[i].Timestamp.Before(messages[i-1].Timestamp))
		}
	}
}

func TestGetConversation_SymmetricForBothParticipants(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	s := newTestServer(store)

	seedConversation(t, store, [][3]string{
		{"alice", "bob", "1"},
		{"bob", "alice", "2"},
	})

	asAlice := decodeMessages(t, getConversation(t, s, "alice", "bob", ""))
	asBob := decodeMessages(t, getConversation(t, s, "bob", "alice", ""))

	req.Equal(asAlice, asBob)
}

func TestGetConversation_Pagination(t *testing.T) {
	req := require.New(t)
	store := &memStore{}
	s := newTestServer(store)

	seedConversation(t, store, [][3]string{
		{"alice", "bob", "1"},
		{"alice", "bob", "2"},
		{"alice", "bob", "3"},
		{"alice", "bob", "4"},
	})

	w := getConversation(t, s, "alice", "bob", "?limit=2")
	page := decodeMessages(t, w)
	req.Len(page, 2)
	req.Equal("3", page[0].Content)
	req.Equal("4", page[1].Content)

	w = getConversation(t, s, "alice", "bob", "?limit=2&before="+page[0].ID.Hex())
	older := decodeMessages(t, w)
	req.Len(older, 2)
	req.Equal("1", older[0].Content)
	req.Equal("2", older[1].Content)
}

func TestGetConversation_BadQueryParams(t *testing.T) {
	req := require.New(t)
	s := newTestServer(&memStore{})

	w := getConversation(t, s, "alice", "bob", "?limit=zero")
	req.Equal(http.StatusBadRequest, w.Code)

	w = getConversation(t, s, "alice", "bob", "?before=not-an-id")
	req.Equal(http.StatusBadRequest, w.Code)
}
