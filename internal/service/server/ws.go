package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"livin/internal/auth"
	"livin/internal/service/chat"
	"livin/internal/utils/log"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// HandleChatWS upgrades an authenticated client to a chat connection. The
// token travels in a query parameter because browsers cannot set headers on
// websocket upgrades.
func (s *HttpServer) HandleChatWS() http.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == s.cfg.AllowedOrigin
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.ParseToken(s.secret(), r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debug("websocket upgrade failed", zap.Error(err))
			return
		}

		conn := chat.NewConnection(ws)
		go conn.WritePump()
		s.serveChat(claims, ws, conn)
	}
}

// serveChat runs one connection's read loop and owns its registration
// lifecycle: unregistered until a joinRoom, registered until the socket
// closes. Submissions ride the loop, so one connection's messages persist in
// the order they arrived.
func (s *HttpServer) serveChat(claims *auth.Claims, ws *websocket.Conn, conn *chat.Connection) {
	registered := false

	defer func() {
		if registered {
			s.hub.Deregister(claims.UserID, conn)
			if err := s.presence.Offline(context.Background(), claims.UserID); err != nil {
				log.Debug("presence offline failed", zap.Error(err))
			}
		}
		conn.Close()
		ws.Close()
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			log.Debug("chat websocket closed",
				zap.String("user", claims.UserID), zap.Error(err))
			return
		}

		var env chat.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			conn.Enqueue(chat.ErrorEnvelope("Malformed event."))
			continue
		}

		switch env.Event {
		case chat.EventJoinRoom:
			var payload chat.JoinRoomPayload
			_ = json.Unmarshal(env.Data, &payload)

			// Identity is bound to the verified token, never to client
			// data. A mismatching joinRoom is an impersonation attempt.
			if payload.UserID != "" && payload.UserID != claims.UserID {
				log.Warn("joinRoom user mismatch",
					zap.String("token", claims.UserID), zap.String("claimed", payload.UserID))
				conn.Enqueue(chat.ErrorEnvelope("You can only join your own room."))
				continue
			}

			if !registered {
				s.hub.Register(claims.UserID, conn)
				registered = true
			}
			s.heartbeat(claims.UserID)

		case chat.EventSendMessage:
			if !registered {
				log.Info("submission from unregistered connection",
					zap.String("user", claims.UserID))
				conn.Enqueue(chat.ErrorEnvelope("Join your room before sending messages."))
				continue
			}

			var payload chat.SendMessagePayload
			_ = json.Unmarshal(env.Data, &payload)

			if payload.SenderID != "" && payload.SenderID != claims.UserID {
				log.Warn("sendMessage sender mismatch",
					zap.String("token", claims.UserID), zap.String("claimed", payload.SenderID))
				conn.Enqueue(chat.ErrorEnvelope("Sender does not match the authenticated user."))
				continue
			}

			// The socket may close while the insert is in flight; a
			// background context lets the write land anyway.
			msg, err := s.chat.Submit(context.Background(), claims.UserID, payload.RecipientID, payload.Message)
			switch {
			case errors.Is(err, chat.ErrEmptyRecipient), errors.Is(err, chat.ErrEmptyContent):
				conn.Enqueue(chat.ErrorEnvelope(err.Error()))
			case err != nil:
				log.Error("message submit failed", zap.Error(err))
				conn.Enqueue(chat.ErrorEnvelope("Failed to send or save message."))
			default:
				if ack, err := chat.NewEnvelope(chat.EventSendMessageAck,
					&chat.AckPayload{MessageID: msg.ID.Hex()}); err == nil {
					conn.Enqueue(ack)
				}
			}
			s.heartbeat(claims.UserID)

		default:
			conn.Enqueue(chat.ErrorEnvelope("Unknown event."))
		}
	}
}

func (s *HttpServer) heartbeat(userID string) {
	if err := s.presence.Heartbeat(context.Background(), userID); err != nil {
		log.Debug("presence heartbeat failed", zap.Error(err))
	}
}
