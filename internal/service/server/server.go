package server

import (
	"context"
	"net/http"

	"livin/internal/auth"
	"livin/internal/config"
	"livin/internal/model"
	billRepo "livin/internal/repository/bill"
	messageRepo "livin/internal/repository/message"
	profileRepo "livin/internal/repository/profile"
	propertyRepo "livin/internal/repository/property"
	serviceRepo "livin/internal/repository/service"
	userRepo "livin/internal/repository/user"
	"livin/internal/service/chat"
	"livin/internal/service/presence"
	"livin/internal/utils/log"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type (
	// MessageHistory is the read side of the conversation store.
	MessageHistory interface {
		ListBetween(ctx context.Context, a, b string, page messageRepo.Page) ([]model.Message, error)
	}

	HttpServer struct {
		cfg *config.Config

		users      *userRepo.UserRepo
		profiles   *profileRepo.ProfileRepo
		properties *propertyRepo.PropertyRepo
		services   *serviceRepo.ServiceRepo
		bills      *billRepo.BillRepo
		messages   MessageHistory

		hub      *chat.Hub
		chat     *chat.Service
		presence *presence.Service

		validate *validator.Validate
	}
)

func NewHttpServer(
	cfg *config.Config,
	users *userRepo.UserRepo,
	profiles *profileRepo.ProfileRepo,
	properties *propertyRepo.PropertyRepo,
	services *serviceRepo.ServiceRepo,
	bills *billRepo.BillRepo,
	messages MessageHistory,
	chatSvc *chat.Service,
	hub *chat.Hub,
	presenceSvc *presence.Service,
) *HttpServer {
	return &HttpServer{
		cfg:        cfg,
		users:      users,
		profiles:   profiles,
		properties: properties,
		services:   services,
		bills:      bills,
		messages:   messages,
		hub:        hub,
		chat:       chatSvc,
		presence:   presenceSvc,
		validate:   validator.New(),
	}
}

func (s *HttpServer) Run() {
	r := s.Router()

	log.Info("server listening", zap.String("addr", s.cfg.ListenAddr))
	if err := http.ListenAndServe(s.cfg.ListenAddr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// Router wires every route. Role gates mirror who may reach each feature:
// profiles are for roommate seekers, everything else is open to any
// authenticated account.
func (s *HttpServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.corsMiddleware)

	r.HandleFunc("/", s.HandleHealth()).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.HandleChatWS()).Methods(http.MethodGet)
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.cfg.UploadDir))))

	r.HandleFunc("/auth/signup", s.HandleSignup()).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/auth/login", s.HandleLogin()).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/users/profile", s.authed(s.HandleGetAccount())).Methods(http.MethodGet)
	r.Handle("/users/profile", s.authed(s.HandleUpdateAccount())).Methods(http.MethodPatch, http.MethodOptions)
	r.Handle("/users/{id}/status", s.authed(s.HandleUserStatus())).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", s.HandleGetUser()).Methods(http.MethodGet)

	student := model.UserTypeStudent
	r.Handle("/api/profiles", s.roled(s.HandleListProfiles(), student)).Methods(http.MethodGet)
	r.Handle("/api/profiles", s.roled(s.HandleCreateProfile(), student)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/api/profiles/me", s.roled(s.HandleGetMyProfile(), student)).Methods(http.MethodGet)
	r.Handle("/api/profiles/me", s.roled(s.HandleDeleteMyProfile(), student)).Methods(http.MethodDelete, http.MethodOptions)
	r.Handle("/api/profiles/my-likes", s.roled(s.HandleMyLikes(), student)).Methods(http.MethodGet)
	r.Handle("/api/profiles/like/{profileId}", s.roled(s.HandleLikeProfile(), student)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/api/profiles/like/{profileId}", s.roled(s.HandleUnlikeProfile(), student)).Methods(http.MethodDelete, http.MethodOptions)
	r.Handle("/api/profiles/{profileId}", s.roled(s.HandleGetProfile(), student)).Methods(http.MethodGet)

	r.HandleFunc("/api/properties", s.HandleListProperties()).Methods(http.MethodGet)
	r.Handle("/api/properties", s.authed(s.HandleCreateProperty())).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/api/properties/my", s.authed(s.HandleMyProperties())).Methods(http.MethodGet)
	r.HandleFunc("/api/properties/{id}", s.HandleGetProperty()).Methods(http.MethodGet)
	r.Handle("/api/properties/{id}", s.authed(s.HandleUpdateProperty())).Methods(http.MethodPut, http.MethodOptions)
	r.Handle("/api/properties/{id}", s.authed(s.HandleDeleteProperty())).Methods(http.MethodDelete, http.MethodOptions)

	r.HandleFunc("/api/services", s.HandleListServices()).Methods(http.MethodGet)
	r.Handle("/api/services", s.authed(s.HandleCreateService())).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/api/services/my", s.authed(s.HandleMyServices())).Methods(http.MethodGet)
	r.HandleFunc("/api/services/{id}", s.HandleGetService()).Methods(http.MethodGet)
	r.Handle("/api/services/{id}", s.authed(s.HandleUpdateService())).Methods(http.MethodPut, http.MethodOptions)
	r.Handle("/api/services/{id}", s.authed(s.HandleDeleteService())).Methods(http.MethodDelete, http.MethodOptions)

	r.Handle("/api/bills", s.authed(s.HandleMyBills())).Methods(http.MethodGet)
	r.Handle("/api/bills", s.authed(s.HandleCreateBill())).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/api/bills/created", s.authed(s.HandleBillsCreatedByMe())).Methods(http.MethodGet)
	r.Handle("/api/bills/{billId}", s.authed(s.HandleGetBill())).Methods(http.MethodGet)
	r.Handle("/api/bills/{billId}", s.authed(s.HandleUpdateBill())).Methods(http.MethodPut, http.MethodOptions)
	r.Handle("/api/bills/{billId}", s.authed(s.HandleDeleteBill())).Methods(http.MethodDelete, http.MethodOptions)
	r.Handle("/api/bills/{billId}/settle", s.authed(s.HandleSettleBill())).Methods(http.MethodPatch, http.MethodOptions)
	r.Handle("/api/bills/{billId}/shares", s.authed(s.HandleBillShares())).Methods(http.MethodGet)

	r.Handle("/api/messages/{recipientId}", s.authed(s.HandleGetConversation())).Methods(http.MethodGet)

	return r
}

func (s *HttpServer) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is running"))
	}
}

func (s *HttpServer) secret() []byte {
	return []byte(s.cfg.JWTSecret)
}

func (s *HttpServer) authed(next http.HandlerFunc) http.Handler {
	return auth.Middleware(s.secret())(next)
}

func (s *HttpServer) roled(next http.HandlerFunc, roles ...string) http.Handler {
	return auth.Middleware(s.secret())(auth.RequireRole(roles...)(next))
}

// corsMiddleware reflects the single configured frontend origin, matching
// the credentials-mode CORS setup the frontend expects.
func (s *HttpServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin == s.cfg.AllowedOrigin {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
