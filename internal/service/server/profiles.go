package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"livin/internal/auth"
	"livin/internal/model"
	"livin/internal/utils/log"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// jsonField decodes a JSON-stringified multipart form value into dst,
// leaving dst untouched when the value is absent or malformed. The frontend
// stringifies arrays and nested objects into FormData fields.
func jsonField(r *http.Request, name string, dst any) {
	v := r.FormValue(name)
	if v == "" {
		return
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		log.Debug("ignoring malformed form field", zap.String("field", name))
	}
}

func intField(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.FormValue(name))
	return n
}

func (s *HttpServer) HandleCreateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid form data.")
			return
		}

		existing, err := s.profiles.GetByUserID(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while creating profile.")
			return
		}
		if existing != nil {
			respondError(w, http.StatusConflict, "A profile already exists for this user.")
			return
		}

		images, err := s.saveUploadedFiles(r, "profileImages", "profiles", 3)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Profile images must be image files.")
			return
		}

		profile := &model.Profile{
			UserID:           claims.UserID,
			FirstName:        r.FormValue("firstName"),
			LastName:         r.FormValue("lastName"),
			Age:              intField(r, "age"),
			Gender:           r.FormValue("gender"),
			Occupation:       r.FormValue("occupation"),
			Bio:              r.FormValue("bio"),
			PreferredAreas:   r.FormValue("preferredAreas"),
			MaxCommute:       r.FormValue("maxCommute"),
			BudgetMin:        intField(r, "budgetMin"),
			BudgetMax:        intField(r, "budgetMax"),
			RoomType:         r.FormValue("roomType"),
			GenderPreference: r.FormValue("genderPreference"),
			WorkSchedule:     r.FormValue("workSchedule"),
			ProfileImages:    images,
			PreferredCities:  []string{},
			Interests:        []string{},
			Languages:        []string{},
			DealBreakers:     []string{},
		}
		jsonField(r, "preferredCities", &profile.PreferredCities)
		jsonField(r, "lifestyle", &profile.Lifestyle)
		jsonField(r, "interests", &profile.Interests)
		jsonField(r, "ageRange", &profile.AgeRange)
		jsonField(r, "languages", &profile.Languages)
		jsonField(r, "dealBreakers", &profile.DealBreakers)

		if profile.FirstName == "" || profile.LastName == "" || profile.Bio == "" {
			respondError(w, http.StatusBadRequest, "Please check all required fields.")
			return
		}

		if _, err := s.profiles.Create(r.Context(), profile); err != nil {
			log.Error("create profile failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Server error while creating profile.")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{
			"message": "Profile created successfully!",
			"profile": profile,
		})
	}
}

func (s *HttpServer) HandleGetMyProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		profile, err := s.profiles.GetByUserID(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching profile.")
			return
		}
		if profile == nil {
			respondError(w, http.StatusNotFound, "Profile not found. Please create one.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"profile": profile})
	}
}

func (s *HttpServer) HandleListProfiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		profiles, err := s.profiles.ListExcludingUser(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching profiles.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
	}
}

func (s *HttpServer) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := s.profiles.GetByID(r.Context(), mux.Vars(r)["profileId"])
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching profile.")
			return
		}
		if profile == nil {
			respondError(w, http.StatusNotFound, "Profile not found.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"profile": profile})
	}
}

func (s *HttpServer) HandleDeleteMyProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		deleted, err := s.profiles.DeleteByUserID(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while deleting profile.")
			return
		}
		if !deleted {
			respondError(w, http.StatusNotFound, "Profile not found.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Profile deleted successfully."})
	}
}

func (s *HttpServer) HandleLikeProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		profileID := mux.Vars(r)["profileId"]

		profile, err := s.profiles.GetByID(r.Context(), profileID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while liking profile.")
			return
		}
		if profile == nil {
			respondError(w, http.StatusNotFound, "Profile not found.")
			return
		}

		user, err := s.users.GetByID(r.Context(), claims.UserID)
		if err != nil || user == nil {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}

		for _, liked := range user.LikedProfiles {
			if liked == profileID {
				respondError(w, http.StatusConflict, "You have already liked this profile.")
				return
			}
		}

		if err := s.users.AddLikedProfile(r.Context(), claims.UserID, profileID); err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while liking profile.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message":       "Profile liked successfully!",
			"likedProfiles": append(user.LikedProfiles, profileID),
		})
	}
}

func (s *HttpServer) HandleUnlikeProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		profileID := mux.Vars(r)["profileId"]

		user, err := s.users.GetByID(r.Context(), claims.UserID)
		if err != nil || user == nil {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}

		liked := false
		remaining := make([]string, 0, len(user.LikedProfiles))
		for _, id := range user.LikedProfiles {
			if id == profileID {
				liked = true
				continue
			}
			remaining = append(remaining, id)
		}
		if !liked {
			respondError(w, http.StatusNotFound, "Profile not found in your likes.")
			return
		}

		if err := s.users.RemoveLikedProfile(r.Context(), claims.UserID, profileID); err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while unliking profile.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message":       "Profile unliked successfully!",
			"likedProfiles": remaining,
		})
	}
}

func (s *HttpServer) HandleMyLikes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		user, err := s.users.GetByID(r.Context(), claims.UserID)
		if err != nil || user == nil {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}

		profiles, err := s.profiles.ListByIDs(r.Context(), user.LikedProfiles)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching likes.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
	}
}
