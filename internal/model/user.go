package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserTypeStudent       = "student"
	UserTypeProfessional  = "professional"
	UserTypePropertyOwner = "property-owner"
	UserTypeVendor        = "vendor"
)

type (
	User struct {
		ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
		FirstName     string             `bson:"firstName" json:"firstName"`
		LastName      string             `bson:"lastName" json:"lastName"`
		Email         string             `bson:"email" json:"email"`
		Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
		Password      string             `bson:"password" json:"-"`
		UserType      string             `bson:"userType,omitempty" json:"userType,omitempty"`
		AvatarURL     string             `bson:"avatarUrl" json:"avatarUrl"`
		AgreeToTerms  bool               `bson:"agreeToTerms,omitempty" json:"agreeToTerms,omitempty"`
		LikedProfiles []string           `bson:"likedProfiles" json:"likedProfiles"`
	}
)
