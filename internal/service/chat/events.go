package chat

import (
	"encoding/json"
)

// Event names mirror the socket events the frontend already speaks.
const (
	EventJoinRoom         = "joinRoom"
	EventSendMessage      = "sendMessage"
	EventReceiveMessage   = "receiveMessage"
	EventSendMessageAck   = "sendMessageAck"
	EventSendMessageError = "sendMessageError"
)

type (
	// Envelope is the wire frame for every websocket event, in both
	// directions.
	Envelope struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data,omitempty"`
	}

	JoinRoomPayload struct {
		UserID string `json:"userId"`
	}

	// SendMessagePayload is a client submission. SenderID is accepted for
	// wire compatibility only: the server trusts the registered identity and
	// rejects a mismatching senderId outright.
	SendMessagePayload struct {
		SenderID    string `json:"senderId,omitempty"`
		RecipientID string `json:"recipientId"`
		Message     string `json:"message"`
	}

	AckPayload struct {
		MessageID string `json:"messageId"`
	}

	ErrorPayload struct {
		Message string `json:"message"`
	}
)

// NewEnvelope marshals an event frame.
func NewEnvelope(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return json.Marshal(&Envelope{
		Event: event,
		Data:  raw,
	})
}

// ErrorEnvelope builds a sendMessageError frame. Marshalling a flat string
// payload cannot fail, so no error is returned.
func ErrorEnvelope(msg string) []byte {
	payload, _ := NewEnvelope(EventSendMessageError, &ErrorPayload{Message: msg})
	return payload
}
