package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	PropertyTiming struct {
		CheckIn       string `bson:"checkIn" json:"checkIn"`
		CheckOut      string `bson:"checkOut" json:"checkOut"`
		VisitingHours string `bson:"visitingHours" json:"visitingHours"`
	}

	// Property is a rentable listing (pg, hostel, co-living, apartment).
	Property struct {
		ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
		OwnerID      string             `bson:"ownerId" json:"ownerId"`
		Title        string             `bson:"title" json:"title"`
		Description  string             `bson:"description" json:"description"`
		PropertyType string             `bson:"propertyType" json:"propertyType"`
		Gender       string             `bson:"gender" json:"gender"`

		Address  string `bson:"address" json:"address"`
		City     string `bson:"city" json:"city"`
		State    string `bson:"state" json:"state"`
		Pincode  string `bson:"pincode" json:"pincode"`
		Landmark string `bson:"landmark,omitempty" json:"landmark,omitempty"`

		Rent                int  `bson:"rent" json:"rent"`
		Deposit             int  `bson:"deposit" json:"deposit"`
		Maintenance         int  `bson:"maintenance" json:"maintenance"`
		ElectricityIncluded bool `bson:"electricityIncluded" json:"electricityIncluded"`

		TotalRooms     int    `bson:"totalRooms" json:"totalRooms"`
		AvailableRooms int    `bson:"availableRooms" json:"availableRooms"`
		RoomType       string `bson:"roomType" json:"roomType"`
		Bathrooms      int    `bson:"bathrooms" json:"bathrooms"`

		Amenities []string `bson:"amenities" json:"amenities"`
		Images    []string `bson:"images" json:"images"`

		ContactName  string `bson:"contactName" json:"contactName"`
		ContactPhone string `bson:"contactPhone" json:"contactPhone"`
		ContactEmail string `bson:"contactEmail" json:"contactEmail"`

		Rules  []string       `bson:"rules" json:"rules"`
		Timing PropertyTiming `bson:"timing" json:"timing"`

		Rating       float64   `bson:"rating" json:"rating"`
		Reviews      int       `bson:"reviews" json:"reviews"`
		Badges       []string  `bson:"badges" json:"badges"`
		Availability string    `bson:"availability" json:"availability"`
		CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
		UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
	}
)
