package server

import (
	"net/http"

	"livin/internal/auth"
	"livin/internal/model"
	"livin/internal/utils/log"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// propertyFromForm builds a property from multipart form fields, reusing
// existing values where the form leaves a field empty (update path).
func propertyFromForm(r *http.Request, base *model.Property) *model.Property {
	p := *base
	set := func(dst *string, name string) {
		if v := r.FormValue(name); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, name string) {
		if v := r.FormValue(name); v != "" {
			*dst = intField(r, name)
		}
	}

	set(&p.Title, "title")
	set(&p.Description, "description")
	set(&p.PropertyType, "propertyType")
	set(&p.Gender, "gender")
	set(&p.Address, "address")
	set(&p.City, "city")
	set(&p.State, "state")
	set(&p.Pincode, "pincode")
	set(&p.Landmark, "landmark")
	set(&p.RoomType, "roomType")
	set(&p.ContactName, "contactName")
	set(&p.ContactPhone, "contactPhone")
	set(&p.ContactEmail, "contactEmail")
	set(&p.Availability, "availability")
	setInt(&p.Rent, "rent")
	setInt(&p.Deposit, "deposit")
	setInt(&p.Maintenance, "maintenance")
	setInt(&p.TotalRooms, "totalRooms")
	setInt(&p.AvailableRooms, "availableRooms")
	setInt(&p.Bathrooms, "bathrooms")
	if v := r.FormValue("electricityIncluded"); v != "" {
		p.ElectricityIncluded = v == "true"
	}
	jsonField(r, "amenities", &p.Amenities)
	jsonField(r, "rules", &p.Rules)
	jsonField(r, "timing", &p.Timing)

	return &p
}

func (s *HttpServer) HandleCreateProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid form data.")
			return
		}

		images, err := s.saveUploadedFiles(r, "images", "", 10)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Listing images must be image files.")
			return
		}

		property := propertyFromForm(r, &model.Property{
			Amenities:    []string{},
			Rules:        []string{},
			Badges:       []string{},
			Availability: "Available Now",
		})
		property.OwnerID = claims.UserID
		property.Images = images

		if property.Title == "" || property.Description == "" || property.Address == "" {
			respondError(w, http.StatusBadRequest, "Please check all required fields.")
			return
		}

		if _, err := s.properties.Create(r.Context(), property); err != nil {
			log.Error("create property failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Server error while creating property.")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{
			"message":  "Property created successfully!",
			"property": property,
		})
	}
}

func (s *HttpServer) HandleListProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		properties, err := s.properties.List(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching properties.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"properties": properties})
	}
}

func (s *HttpServer) HandleMyProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		properties, err := s.properties.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching properties.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"properties": properties})
	}
}

func (s *HttpServer) HandleGetProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		property, err := s.properties.GetByID(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while fetching property.")
			return
		}
		if property == nil {
			respondError(w, http.StatusNotFound, "Property not found.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"property": property})
	}
}

func (s *HttpServer) HandleUpdateProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())
		id := mux.Vars(r)["id"]

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid form data.")
			return
		}

		existing, err := s.properties.GetOwned(r.Context(), id, claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while updating property.")
			return
		}
		if existing == nil {
			respondError(w, http.StatusNotFound, "Property not found or you do not have permission to edit it.")
			return
		}

		property := propertyFromForm(r, existing)

		images, err := s.saveUploadedFiles(r, "images", "", 10)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Listing images must be image files.")
			return
		}
		if len(images) > 0 {
			property.Images = images
		}

		if err := s.properties.Update(r.Context(), id, property); err != nil {
			log.Error("update property failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Server error while updating property.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message":  "Property updated successfully!",
			"property": property,
		})
	}
}

func (s *HttpServer) HandleDeleteProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := auth.FromContext(r.Context())

		deleted, err := s.properties.DeleteOwned(r.Context(), mux.Vars(r)["id"], claims.UserID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error while deleting property.")
			return
		}
		if !deleted {
			respondError(w, http.StatusNotFound, "Property not found or you do not have permission to delete it.")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Property deleted successfully."})
	}
}
