package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"livin/internal/model"
	"livin/internal/utils/log"

	"go.uber.org/zap"
)

var (
	ErrEmptyRecipient = errors.New("recipient id is required")
	ErrEmptyContent   = errors.New("message content is required")
)

type (
	// MessageStore durably appends messages. Insert must assign the stored
	// id before returning.
	MessageStore interface {
		Insert(ctx context.Context, msg *model.Message) error
	}

	// Service is the conversation delivery pipeline: build a message with a
	// server-assigned timestamp, persist it, then fan it out to every live
	// connection of the receiver and of the sender. A message is never
	// delivered before it has been persisted.
	Service struct {
		store MessageStore
		hub   *Hub

		now func() time.Time
	}
)

func NewService(store MessageStore, hub *Hub) *Service {
	return &Service{
		store: store,
		hub:   hub,
		now:   time.Now,
	}
}

// Submit persists one message and pushes it to both participants' live
// connections. The sender id must come from the connection's registration,
// never from client data. On a persist failure nothing is delivered and the
// error is returned for the caller to surface.
func (s *Service) Submit(ctx context.Context, senderID, recipientID, content string) (*model.Message, error) {
	if recipientID == "" {
		return nil, ErrEmptyRecipient
	}
	if content == "" {
		return nil, ErrEmptyContent
	}

	msg := &model.Message{
		Sender:    senderID,
		Receiver:  recipientID,
		Content:   content,
		Timestamp: s.now(),
	}

	if err := s.store.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("persist message: %w", err)
	}

	payload, err := NewEnvelope(EventReceiveMessage, msg)
	if err != nil {
		// The message is already durable; only the live push is lost and the
		// receiver picks it up from history.
		log.Error("marshal receiveMessage failed", zap.Error(err))
		return msg, nil
	}

	delivered := s.hub.Send(recipientID, payload)
	if senderID != recipientID {
		delivered += s.hub.Send(senderID, payload)
	}
	log.Debug("message delivered",
		zap.String("sender", senderID),
		zap.String("receiver", recipientID),
		zap.Int("targets", delivered))

	return msg, nil
}
