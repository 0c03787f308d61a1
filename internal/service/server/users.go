package server

import (
	"net/http"

	"livin/internal/auth"
	"livin/internal/utils/log"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *HttpServer) HandleGetAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		user, err := s.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching account.")
			return
		}
		if user == nil {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"user": user})
	}
}

// HandleUpdateAccount patches name/phone fields and optionally replaces the
// avatar with an uploaded image.
func (s *HttpServer) HandleUpdateAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid form data.")
			return
		}

		fields := bson.M{}
		for _, name := range []string{"firstName", "lastName", "phone"} {
			if v := r.FormValue(name); v != "" {
				fields[name] = v
			}
		}

		avatars, err := s.saveUploadedFiles(r, "avatar", "", 1)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Avatar must be an image.")
			return
		}
		if len(avatars) > 0 {
			fields["avatarUrl"] = avatars[0]
		}

		if len(fields) > 0 {
			if err := s.users.Update(r.Context(), claims.UserID, fields); err != nil {
				log.Error("update account failed", zap.Error(err))
				respondError(w, http.StatusInternalServerError, "Server error while updating account.")
				return
			}
		}

		user, err := s.users.GetByID(r.Context(), claims.UserID)
		if err != nil || user == nil {
			respondError(w, http.StatusInternalServerError, "Server error while updating account.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Account updated successfully.",
			"user":    user,
		})
	}
}

func (s *HttpServer) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		user, err := s.users.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching user.")
			return
		}
		if user == nil {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"_id":       user.ID,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"userType":  user.UserType,
			"avatarUrl": user.AvatarURL,
		})
	}
}

// HandleUserStatus reports whether a user currently holds a live chat
// connection, from the presence keys in Redis.
func (s *HttpServer) HandleUserStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		online, err := s.presence.IsOnline(r.Context(), id)
		if err != nil {
			log.Error("presence lookup failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Server error while fetching status.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]bool{"online": online})
	}
}
