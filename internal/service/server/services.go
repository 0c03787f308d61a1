package server

import (
	"net/http"

	"livin/internal/auth"
	"livin/internal/model"
	"livin/internal/utils/log"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func serviceFromForm(r *http.Request, base *model.Service) *model.Service {
	svc := *base
	set := func(dst *string, name string) {
		if v := r.FormValue(name); v != "" {
			*dst = v
		}
	}

	set(&svc.Name, "name")
	set(&svc.Description, "description")
	set(&svc.Category, "category")
	set(&svc.Address, "address")
	set(&svc.City, "city")
	set(&svc.State, "state")
	set(&svc.Pincode, "pincode")
	set(&svc.ServiceArea, "serviceArea")
	set(&svc.PriceRange, "priceRange")
	set(&svc.PriceType, "priceType")
	set(&svc.MinimumOrder, "minimumOrder")
	set(&svc.DeliveryCharges, "deliveryCharges")
	set(&svc.ContactName, "contactName")
	set(&svc.ContactPhone, "contactPhone")
	set(&svc.ContactEmail, "contactEmail")
	set(&svc.Whatsapp, "whatsapp")
	set(&svc.Policies, "policies")
	if v := r.FormValue("price"); v != "" {
		svc.Price = intField(r, "price")
	}
	jsonField(r, "specialties", &svc.Specialties)
	jsonField(r, "timing", &svc.Timing)
	jsonField(r, "features", &svc.Features)

	return &svc
}

func (s *HttpServer) HandleCreateService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid form data.")
			return
		}

		images, err := s.saveUploadedFiles(r, "images", "", 5)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Listing images must be image files.")
			return
		}

		service := serviceFromForm(r, &model.Service{
			Specialties: []string{},
			Features:    []string{},
		})
		service.VendorID = claims.UserID
		service.Images = images

		if service.Name == "" || service.Description == "" || service.Category == "" {
			respondError(w, http.StatusBadRequest, "Please check all required fields.")
			return
		}

		if _, err := s.services.Create(r.Context(), service); err != nil {
			log.Error("create service failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Server error while creating service.")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{
			"message": "Service created successfully!",
			"service": service,
		})
	}
}

func (s *HttpServer) HandleListServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := s.services.List(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching services.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"services": services})
	}
}

func (s *HttpServer) HandleMyServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		services, err := s.services.ListByVendor(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching services.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"services": services})
	}
}

func (s *HttpServer) HandleGetService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := s.services.GetByID(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching service.")
			return
		}
		if service == nil {
			respondError(w, http.StatusNotFound, "Service not found.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"service": service})
	}
}

func (s *HttpServer) HandleUpdateService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		id := mux.Vars(r)["id"]

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid form data.")
			return
		}

		existing, err := s.services.GetOwned(r.Context(), id, claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while updating service.")
			return
		}
		if existing == nil {
			respondError(w, http.StatusNotFound, "Service not found or you do not have permission to edit it.")
			return
		}

		service := serviceFromForm(r, existing)

		images, err := s.saveUploadedFiles(r, "images", "", 5)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Listing images must be image files.")
			return
		}
		if len(images) > 0 {
			service.Images = images
		}

		if err := s.services.Update(r.Context(), id, service); err != nil {
			log.Error("update service failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Server error while updating service.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Service updated successfully!",
			"service": service,
		})
	}
}

func (s *HttpServer) HandleDeleteService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		deleted, err := s.services.DeleteOwned(r.Context(), mux.Vars(r)["id"], claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while deleting service.")
			return
		}
		if !deleted {
			respondError(w, http.StatusNotFound, "Service not found or you do not have permission to delete it.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Service deleted successfully."})
	}
}
