package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceRequest scopes through UserID (the creator). AssignedTo is
// the staff identity working the request, set only by Admin or the owner
// of the enclosing property.
type MaintenanceRequest struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title         string              `bson:"title" json:"title"`
	Description   string              `bson:"description" json:"description"`
	UserID        primitive.ObjectID  `bson:"userId" json:"userId"`
	PropertyID    primitive.ObjectID  `bson:"propertyId" json:"propertyId"`
	UnitID        primitive.ObjectID  `bson:"unitId" json:"unitId"`
	Priority      MaintenancePriority `bson:"priority" json:"priority"`
	Status        MaintenanceStatus   `bson:"status" json:"status"`
	AssignedTo    *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	EstimatedCost *float64            `bson:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`
	ActualCost    *float64            `bson:"actualCost,omitempty" json:"actualCost,omitempty"`
	PaidDate      *time.Time          `bson:"paidDate,omitempty" json:"paidDate,omitempty"`
	Images        []string            `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}
