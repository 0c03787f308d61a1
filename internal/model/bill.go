package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BillStatusPending = "pending"
	BillStatusSettled = "settled"

	SplitTypeEqual  = "equal"
	SplitTypeCustom = "custom"
)

type (
	// Bill is a shared expense split among roommates. Amount and custom
	// split values are whole cents to keep the arithmetic exact.
	Bill struct {
		ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
		Title        string             `bson:"title" json:"title"`
		Description  string             `bson:"description,omitempty" json:"description,omitempty"`
		Amount       int64              `bson:"amount" json:"amount"`
		PaidBy       string             `bson:"paidBy" json:"paidBy"`
		Category     string             `bson:"category" json:"category"`
		Date         time.Time          `bson:"date" json:"date"`
		Status       string             `bson:"status" json:"status"`
		SplitType    string             `bson:"splitType" json:"splitType"`
		SplitBetween []string           `bson:"splitBetween" json:"splitBetween"`
		CustomSplits map[string]int64   `bson:"customSplits,omitempty" json:"customSplits,omitempty"`
		CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
		UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
	}
)
