package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	ServiceTiming struct {
		OpenTime    string   `bson:"openTime,omitempty" json:"openTime,omitempty"`
		CloseTime   string   `bson:"closeTime,omitempty" json:"closeTime,omitempty"`
		WorkingDays []string `bson:"workingDays,omitempty" json:"workingDays,omitempty"`
	}

	// Service is a vendor listing (tiffin, laundry, cleaning, ...).
	Service struct {
		ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
		VendorID    string             `bson:"vendorId" json:"vendorId"`
		Name        string             `bson:"name" json:"name"`
		Description string             `bson:"description" json:"description"`
		Category    string             `bson:"category" json:"category"`

		Address     string `bson:"address,omitempty" json:"address,omitempty"`
		City        string `bson:"city,omitempty" json:"city,omitempty"`
		State       string `bson:"state,omitempty" json:"state,omitempty"`
		Pincode     string `bson:"pincode,omitempty" json:"pincode,omitempty"`
		ServiceArea string `bson:"serviceArea,omitempty" json:"serviceArea,omitempty"`

		Price           int    `bson:"price,omitempty" json:"price,omitempty"`
		PriceRange      string `bson:"priceRange,omitempty" json:"priceRange,omitempty"`
		PriceType       string `bson:"priceType,omitempty" json:"priceType,omitempty"`
		MinimumOrder    string `bson:"minimumOrder,omitempty" json:"minimumOrder,omitempty"`
		DeliveryCharges string `bson:"deliveryCharges,omitempty" json:"deliveryCharges,omitempty"`

		Specialties []string      `bson:"specialties" json:"specialties"`
		Timing      ServiceTiming `bson:"timing" json:"timing"`
		Images      []string      `bson:"images" json:"images"`

		ContactName  string `bson:"contactName,omitempty" json:"contactName,omitempty"`
		ContactPhone string `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
		ContactEmail string `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
		Whatsapp     string `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`

		Features []string `bson:"features" json:"features"`
		Policies string   `bson:"policies,omitempty" json:"policies,omitempty"`

		CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
		UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	}
)
