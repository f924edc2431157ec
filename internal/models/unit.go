package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unit is a tenant-addressable space on a property.
//
// Invariant: IsOccupied is true exactly when TenantID is non-nil. Both
// fields change together in a single conditional update, never separately.
type Unit struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PropertyID     primitive.ObjectID  `bson:"propertyId" json:"propertyId"`
	UnitNumber     string              `bson:"unitNumber" json:"unitNumber"`
	TenantID       *primitive.ObjectID `bson:"tenantId,omitempty" json:"tenantId,omitempty"`
	OwnerID        *primitive.ObjectID `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
	RentAmount     float64             `bson:"rentAmount" json:"rentAmount"`
	MaintenanceFee float64             `bson:"maintenanceFee" json:"maintenanceFee"`
	IsOccupied     bool                `bson:"isOccupied" json:"isOccupied"`
	Features       []string            `bson:"features,omitempty" json:"features,omitempty"`
}
