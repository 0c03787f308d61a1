package server

import (
	"context"
	"sync"
	"time"

	"livin/internal/auth"
	"livin/internal/config"
	"livin/internal/model"
	messageRepo "livin/internal/repository/message"
	"livin/internal/service/chat"
	"livin/internal/service/presence"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory message store backing both the submit pipeline
// and the history read path in tests. Insertion order is ascending
// (timestamp, id) order because ids are generated monotonically.
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

func (s *memStore) ListBetween(_ context.Context, a, b string, page messageRepo.Page) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matching := []model.Message{}
	for _, m := range s.messages {
		if (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a) {
			matching = append(matching, m)
		}
	}

	if !page.Before.IsZero() {
		cut := len(matching)
		for i, m := range matching {
			if m.ID == page.Before {
				cut = i
				break
			}
		}
		matching = matching[:cut]
	}

	if page.Limit > 0 && int64(len(matching)) > page.Limit {
		matching = matching[int64(len(matching))-page.Limit:]
	}
	return matching, nil
}

type memPresence struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newMemPresence() *memPresence {
	return &memPresence{keys: make(map[string]struct{})}
}

func (p *memPresence) Set(_ context.Context, key string, _ any, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys[key] = struct{}{}
	return nil
}

func (p *memPresence) Del(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.keys, key)
	return nil
}

func (p *memPresence) Exists(_ context.Context, key string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.keys[key]
	return ok, nil
}

func newTestServer(store *memStore) *HttpServer {
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		AllowedOrigin: "http://localhost:5173",
		PresenceTTL:   time.Minute,
	}
	hub := chat.NewHub()

	return &HttpServer{
		cfg:      cfg,
		messages: store,
		hub:      hub,
		chat:     chat.NewService(store, hub),
		presence: presence.NewService(newMemPresence(), cfg.PresenceTTL),
		validate: validator.New(),
	}
}

func testToken(s *HttpServer, userID string) string {
	token, err := auth.GenerateToken(s.secret(), userID, userID+"@example.com", model.UserTypeStudent, time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}
