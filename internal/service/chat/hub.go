package chat

import (
	"sync"
)

type (
	// Target is a live delivery target for pushed payloads. Enqueue must not
	// block; it reports whether the payload was accepted.
	Target interface {
		Enqueue(payload []byte) bool
	}

	// Hub is the registration table: user id -> set of live targets. A user
	// may hold several targets at once (multiple devices or tabs), and every
	// one of them receives each delivery.
	Hub struct {
		mu      sync.RWMutex
		targets map[string]map[Target]struct{}
	}
)

func NewHub() *Hub {
	return &Hub{
		targets: make(map[string]map[Target]struct{}),
	}
}

func (h *Hub) Register(userID string, t Target) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.targets[userID]; !ok {
		h.targets[userID] = make(map[Target]struct{})
	}
	h.targets[userID][t] = struct{}{}
}

// Deregister removes one target. Other targets registered under the same
// user id keep receiving deliveries.
func (h *Hub) Deregister(userID string, t Target) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.targets[userID]; ok {
		delete(set, t)
		if len(set) == 0 {
			delete(h.targets, userID)
		}
	}
}

// Send pushes payload to every target registered under userID and returns
// how many targets accepted it. The target set is snapshotted under the read
// lock, so concurrent registration changes never corrupt the fan-out.
func (h *Hub) Send(userID string, payload []byte) int {
	h.mu.RLock()
	snapshot := make([]Target, 0, len(h.targets[userID]))
	for t := range h.targets[userID] {
		snapshot = append(snapshot, t)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, t := range snapshot {
		if t.Enqueue(payload) {
			delivered++
		}
	}
	return delivered
}

// Connected reports whether at least one target is registered for userID.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.targets[userID]) > 0
}
