package server

import (
	"net/http"
	"strconv"

	"livin/internal/auth"
	messageRepo "livin/internal/repository/message"
	"livin/internal/utils/log"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleGetConversation returns the message history between the caller and
// the counterpart, ascending by timestamp. Without query parameters the
// full conversation is returned; `limit` and `before=<message id>` page
// backwards through older messages.
func (s *HttpServer) HandleGetConversation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		recipientID := mux.Vars(r)["recipientId"]
		if recipientID == "" {
			respondError(w, http.StatusBadRequest, "Recipient ID is required in the URL.")
			return
		}

		var page messageRepo.Page
		if v := r.URL.Query().Get("limit"); v != "" {
			limit, err := strconv.ParseInt(v, 10, 64)
			if err != nil || limit <= 0 {
				respondError(w, http.StatusBadRequest, "limit must be a positive integer.")
				return
			}
			page.Limit = limit
		}
		if v := r.URL.Query().Get("before"); v != "" {
			oid, err := primitive.ObjectIDFromHex(v)
			if err != nil {
				respondError(w, http.StatusBadRequest, "before must be a message id.")
				return
			}
			page.Before = oid
		}

		messages, err := s.messages.ListBetween(r.Context(), claims.UserID, recipientID, page)
		if err != nil {
			log.Error("fetch conversation failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Server error while fetching messages.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"messages": messages})
	}
}
