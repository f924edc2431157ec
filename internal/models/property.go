package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is the ownership anchor for everything beneath it: its AdminID
// is the Owner (or Admin) identity that controls the property, its units,
// and the payments and maintenance requests raised against them.
//
// Units are stored in their own collection keyed by PropertyID rather than
// embedded here, so unit mutations are atomic single-document updates.
type Property struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Address    string             `bson:"address" json:"address"`
	AdminID    primitive.ObjectID `bson:"adminId" json:"adminId"`
	Amenities  []string           `bson:"amenities,omitempty" json:"amenities,omitempty"`
	MonthlyFee float64            `bson:"monthlyFee" json:"monthlyFee"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
}
