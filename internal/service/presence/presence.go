package presence

import (
	"context"
	"fmt"
	"time"
)

type (
	// Store is the subset of the redis wrapper presence relies on.
	Store interface {
		Set(ctx context.Context, key string, value any, ttl time.Duration) error
		Del(ctx context.Context, key string) error
		Exists(ctx context.Context, key string) (bool, error)
	}

	// Service tracks which users currently hold a live chat connection.
	// A presence key expires on its own, so a crashed connection goes
	// offline after at most one TTL.
	Service struct {
		store Store
		ttl   time.Duration
	}
)

func NewService(store Store, ttl time.Duration) *Service {
	return &Service{
		store: store,
		ttl:   ttl,
	}
}

func key(userID string) string {
	return fmt.Sprintf("presence:%s", userID)
}

// Heartbeat marks the user online for one more TTL window.
func (s *Service) Heartbeat(ctx context.Context, userID string) error {
	return s.store.Set(ctx, key(userID), time.Now().Unix(), s.ttl)
}

// Offline clears the user's presence immediately.
func (s *Service) Offline(ctx context.Context, userID string) error {
	return s.store.Del(ctx, key(userID))
}

func (s *Service) IsOnline(ctx context.Context, userID string) (bool, error) {
	return s.store.Exists(ctx, key(userID))
}
