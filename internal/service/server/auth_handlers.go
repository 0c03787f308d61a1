package server

import (
	"net/http"

	"livin/internal/auth"
	"livin/internal/model"
	"livin/internal/utils/log"

	"go.uber.org/zap"
)

type (
	signupRequest struct {
		FirstName    string `json:"firstName" validate:"required"`
		LastName     string `json:"lastName" validate:"required"`
		Email        string `json:"email" validate:"required,email"`
		Phone        string `json:"phone"`
		Password     string `json:"password" validate:"required,min=8,max=72"`
		UserType     string `json:"userType" validate:"omitempty,oneof=student professional property-owner vendor"`
		AgreeToTerms bool   `json:"agreeToTerms"`
	}

	loginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
)

func (s *HttpServer) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := s.validate.Struct(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Please check all required fields.")
			return
		}

		existing, err := s.users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Registration failed")
			return
		}
		if existing != nil {
			respondError(w, http.StatusConflict, "User with this email already exists.")
			return
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		userType := req.UserType
		if userType == "" {
			userType = model.UserTypeStudent
		}

		user := &model.User{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Email:         req.Email,
			Phone:         req.Phone,
			Password:      hashed,
			UserType:      userType,
			AgreeToTerms:  req.AgreeToTerms,
			LikedProfiles: []string{},
		}
		if _, err := s.users.Create(r.Context(), user); err != nil {
			log.Error("create user failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{
			"message": "User registered successfully",
			"user":    user,
		})
	}
}

func (s *HttpServer) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := s.validate.Struct(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Please check all required fields.")
			return
		}

		user, err := s.users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Login failed")
			return
		}
		if user == nil || !auth.CheckPassword(user.Password, req.Password) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := auth.GenerateToken(s.secret(), user.ID.Hex(), user.Email, user.UserType, s.cfg.TokenTTL)
		if err != nil {
			log.Error("sign token failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{
			"message": "Login successful",
			"token":   token,
			"userId":  user.ID.Hex(),
		})
	}
}
