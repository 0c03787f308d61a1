package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	Lifestyle struct {
		Cleanliness int  `bson:"cleanliness" json:"cleanliness"`
		Socialness  int  `bson:"socialness" json:"socialness"`
		NightOwl    int  `bson:"nightOwl" json:"nightOwl"`
		Cooking     int  `bson:"cooking" json:"cooking"`
		Smoking     bool `bson:"smoking" json:"smoking"`
		Drinking    bool `bson:"drinking" json:"drinking"`
		Pets        bool `bson:"pets" json:"pets"`
	}

	AgeRange struct {
		Min int `bson:"min" json:"min"`
		Max int `bson:"max" json:"max"`
	}

	// Profile is a roommate-matching profile. One per user.
	Profile struct {
		ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
		UserID           string             `bson:"userId" json:"userId"`
		FirstName        string             `bson:"firstName" json:"firstName"`
		LastName         string             `bson:"lastName" json:"lastName"`
		Age              int                `bson:"age" json:"age"`
		Gender           string             `bson:"gender" json:"gender"`
		Occupation       string             `bson:"occupation" json:"occupation"`
		Bio              string             `bson:"bio" json:"bio"`
		PreferredCities  []string           `bson:"preferredCities" json:"preferredCities"`
		PreferredAreas   string             `bson:"preferredAreas,omitempty" json:"preferredAreas,omitempty"`
		MaxCommute       string             `bson:"maxCommute,omitempty" json:"maxCommute,omitempty"`
		BudgetMin        int                `bson:"budgetMin" json:"budgetMin"`
		BudgetMax        int                `bson:"budgetMax" json:"budgetMax"`
		Lifestyle        Lifestyle          `bson:"lifestyle" json:"lifestyle"`
		Interests        []string           `bson:"interests" json:"interests"`
		RoomType         string             `bson:"roomType" json:"roomType"`
		GenderPreference string             `bson:"genderPreference" json:"genderPreference"`
		AgeRange         AgeRange           `bson:"ageRange" json:"ageRange"`
		ProfileImages    []string           `bson:"profileImages" json:"profileImages"`
		Languages        []string           `bson:"languages" json:"languages"`
		WorkSchedule     string             `bson:"workSchedule,omitempty" json:"workSchedule,omitempty"`
		DealBreakers     []string           `bson:"dealBreakers" json:"dealBreakers"`
		CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
		UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
	}
)
